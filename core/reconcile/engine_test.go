package reconcile

import (
	"context"
	"testing"
	"time"

	"roster-manager/core/kv"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestReconciler(local, session map[string]string, opts ...Option) *Reconciler {
	var sessionStore kv.Store
	if session != nil {
		sessionStore = kv.NewMemoryStoreFrom(session)
	}
	repo := kv.NewRepository(kv.NewMemoryStoreFrom(local), sessionStore)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(repo, opts...)
}

type row struct {
	Name     string
	Position string
	Primary  bool
}

func rows(records []Record) []row {
	out := make([]row, 0, len(records))
	for _, r := range records {
		out = append(out, row{Name: r.Name, Position: r.Position, Primary: r.IsPrimaryRole})
	}
	return out
}

func createdTeamScenario() map[string]string {
	return map[string]string{
		kv.CreatedTeamsKey("U"): `[{"id":"T","eventId":"E","teamName":"武术队","isCreated":true,"submittedForReview":true}]`,
		kv.KeyPlayerList: `[
			{"name":"Bob","idCard":"110101199001011234","eventId":"E","teamId":"T"},
			{"name":"Alice","eventId":"E","teamId":"T","gender":"female"},
			{"name":"Dave","eventId":"OTHER","teamId":"T"}
		]`,
		kv.KeyStaffList: `[{"name":"Carol","position":"coach","eventId":"E","teamId":"T"}]`,
	}
}

func TestLoadDataset_NoEvent(t *testing.T) {
	r := newTestReconciler(createdTeamScenario(), nil)

	ds := r.LoadDataset(context.Background(), Options{})

	assert.Nil(t, ds.Team)
	assert.NotNil(t, ds.Participants)
	assert.Empty(t, ds.Participants)
	assert.Equal(t, Meta{Source: DatasetSourceLocal}, ds.Meta)
}

func TestLoadDataset_CreatedTeam(t *testing.T) {
	r := newTestReconciler(createdTeamScenario(), nil)

	ds := r.LoadDataset(context.Background(), DefaultOptions("E"))

	require.NotNil(t, ds.Team)
	assert.Equal(t, "T", ds.Team.ID)
	assert.Equal(t, kv.CreatedTeamsKey("U"), ds.Team.Source)
	assert.Equal(t, Meta{Total: 3, Players: 2, Staff: 1, Source: DatasetSourceLocal}, ds.Meta)

	want := []row{
		{Name: "Alice", Position: LabelPlayer, Primary: true},
		{Name: "Bob", Position: LabelPlayer, Primary: true},
		{Name: "Carol", Position: LabelCoach, Primary: true},
	}
	if diff := cmp.Diff(want, rows(ds.Participants)); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, GenderFemale, ds.Participants[0].Gender)
	assert.Equal(t, "34", ds.Participants[1].Age.String())
}

func TestLoadDataset_BackendTeamForIdentity(t *testing.T) {
	r := newTestReconciler(createdTeamScenario(), nil)

	opts := DefaultOptions("E")
	opts.Identity = Identity{Names: []string{"U"}}
	ds := r.LoadDataset(context.Background(), opts)

	require.NotNil(t, ds.Team)
	assert.Equal(t, TeamSourceBackend, ds.Team.Source)
	assert.Equal(t, "武术队", ds.Team.TeamName)
	assert.Equal(t, 3, ds.Meta.Total)
}

func TestLoadDataset_Filters(t *testing.T) {
	r := newTestReconciler(createdTeamScenario(), nil)

	ds := r.LoadDataset(context.Background(), Options{EventID: "E", ExcludeStaff: true})
	assert.Equal(t, Meta{Total: 2, Players: 2, Staff: 0, Source: DatasetSourceLocal}, ds.Meta)

	ds = r.LoadDataset(context.Background(), Options{EventID: "E", ExcludePlayers: true})
	assert.Equal(t, Meta{Total: 1, Players: 0, Staff: 1, Source: DatasetSourceLocal}, ds.Meta)
	assert.Equal(t, "Carol", ds.Participants[0].Name)
}

func TestLoadDataset_MalformedBuckets(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	local := createdTeamScenario()
	local[kv.KeyPlayerList] = `[{"name":"Bob"`
	local[kv.KeyTeamApplications] = `not json`
	local[kv.CreatedTeamsKey("V")] = `{`
	r := newTestReconciler(local, nil, WithLogger(zap.New(core)))

	var ds *Dataset
	require.NotPanics(t, func() {
		ds = r.LoadDataset(context.Background(), DefaultOptions("E"))
	})

	assert.Equal(t, Meta{Total: 1, Players: 0, Staff: 1, Source: DatasetSourceLocal}, ds.Meta)
	require.NotNil(t, ds.Team)
	assert.Equal(t, "T", ds.Team.ID)

	var buckets []string
	for _, entry := range logs.All() {
		buckets = append(buckets, entry.ContextMap()["bucket"].(string))
	}
	assert.ElementsMatch(t, []string{kv.KeyPlayerList, kv.KeyTeamApplications, kv.CreatedTeamsKey("V")}, buckets)
}

func TestLoadDataset_MergesRoles(t *testing.T) {
	local := map[string]string{
		kv.SnapshotKey("E"): `[{"teamId":"T","team":{"id":"T","teamName":"快照队"},"players":[],"staff":[
			{"name":"王五","idCard":"110101199001011234","position":"coach","selectedEvents":["太极拳"],"competition_event":"太极"}
		]}]`,
		kv.KeyPlayerList: `[
			{"name":"王五","idCard":"110101199001011234","eventId":"E","teamId":"T","selectedEvents":"长拳、南拳","pairRegistered":1},
			{"name":"王五","id_card":"110101199001011234","eventId":"E","teamId":"T","selectedEvents":["刀术"]}
		]`,
		kv.KeyStaffList: `[{"name":"王五","idCard":"110101199001011234","position":"doctor","eventId":"E"}]`,
	}
	r := newTestReconciler(local, nil)

	ds := r.LoadDataset(context.Background(), Options{EventID: "E", TeamID: "T", PreferSnapshot: true})

	require.NotNil(t, ds.Team)
	assert.Equal(t, "快照队", ds.Team.TeamName)
	assert.Equal(t, TeamSourceSnapshot, ds.Team.Source)
	assert.Equal(t, Meta{Total: 3, Players: 1, Staff: 2, Source: DatasetSourceSnapshot}, ds.Meta)

	want := []row{
		{Name: "王五", Position: LabelPlayer, Primary: true},
		{Name: "王五", Position: LabelCoach, Primary: false},
		{Name: "王五", Position: LabelMedical, Primary: false},
	}
	if diff := cmp.Diff(want, rows(ds.Participants)); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}

	primary := ds.Participants[0]
	key := "110101199001011234_王五"
	assert.Equal(t, key, primary.UniqueKey)
	assert.ElementsMatch(t, []string{"长拳", "南拳", "刀术", "太极拳"}, primary.SelectedEvents)
	assert.Equal(t, "太极", primary.CompetitionEvent)
	assert.True(t, primary.PairRegistered)
	assert.Equal(t, "playerList,submittedSnapshot,staffList", primary.Source)

	assert.Equal(t, key+"_"+LabelCoach, ds.Participants[1].UniqueKey)
	assert.Equal(t, key+"_"+LabelMedical, ds.Participants[2].UniqueKey)
	assert.Equal(t, []string{"太极拳"}, ds.Participants[1].SelectedEvents)
}

func TestLoadDataset_OnePrimaryPerIdentity(t *testing.T) {
	local := map[string]string{
		kv.KeyStaffList: `[
			{"name":"甲","idCard":"A1","position":"staff","eventId":"E"},
			{"name":"甲","idCard":"A1","position":"medic","eventId":"E"},
			{"name":"乙","idCard":"B1","position":"领队","eventId":"E"},
			{"name":"乙","idCard":"B1","position":"trainer","eventId":"E"}
		]`,
		kv.KeyPlayerList: `[{"name":"甲","idCard":"A1","eventId":"E"}]`,
	}
	r := newTestReconciler(local, nil)

	ds := r.LoadDataset(context.Background(), DefaultOptions("E"))

	type best struct {
		primaries int
		priority  int
	}
	groups := map[string]*best{}
	for _, rec := range ds.Participants {
		base := rec.IDCard + "_" + rec.Name
		g, ok := groups[base]
		if !ok {
			g = &best{priority: UnknownRolePriority + 1}
			groups[base] = g
		}
		if rec.IsPrimaryRole {
			g.primaries++
			assert.LessOrEqual(t, RolePriority(rec.Position), g.priority)
		}
		if p := RolePriority(rec.Position); p < g.priority {
			g.priority = p
		}
	}
	for key, g := range groups {
		assert.Equal(t, 1, g.primaries, key)
	}
	for _, rec := range ds.Participants {
		if rec.IsPrimaryRole {
			assert.Equal(t, groups[rec.IDCard+"_"+rec.Name].priority, RolePriority(rec.Position))
		}
	}
	assert.Equal(t, 5, ds.Meta.Total)
}

func TestLoadDataset_Applications(t *testing.T) {
	local := map[string]string{
		kv.KeyTeamApplications: `[
			{"id":"A1","status":"pending","eventId":"E","teamId":"T","applicantName":"钱七","applicantIdCard":"110101199001011242","position":"staff"},
			{"id":"A2","status":"approved","eventId":"E","staffData":{"real_name":"孙八","idCard":"110101199001011234"},"role":"trainer","applicantPhone":"13800000000"},
			{"id":"A3","status":"rejected","eventId":"E","applicantName":"周九"},
			{"id":"A4","status":"approved","eventId":"E","teamId":"OTHER","applicantName":"吴十"}
		]`,
	}
	r := newTestReconciler(local, nil)

	ds := r.LoadDataset(context.Background(), Options{EventID: "E", TeamID: "T"})
	require.Len(t, ds.Participants, 1)
	sun := ds.Participants[0]
	assert.Equal(t, "孙八", sun.Name)
	assert.Equal(t, LabelCoach, sun.Position)
	assert.Equal(t, "13800000000", sun.Phone)
	assert.Equal(t, "A2", sun.ID)
	assert.Equal(t, SourceTeamApplications, sun.Source)

	ds = r.LoadDataset(context.Background(), Options{EventID: "E", TeamID: "T", IncludePending: true})
	require.Len(t, ds.Participants, 2)
	assert.Equal(t, "孙八", ds.Participants[0].Name)
	assert.Equal(t, "钱七", ds.Participants[1].Name)
	assert.Equal(t, GenderFemale, ds.Participants[1].Gender)

	require.NotNil(t, ds.Team)
	assert.Equal(t, "T", ds.Team.ID)
	assert.Equal(t, TeamSourceExplicit, ds.Team.Source)
}

func TestLoadDataset_ParticipantCache(t *testing.T) {
	local := map[string]string{
		kv.KeyParticipantLatest: `{"eventId":"E","data":[{"name":"赵六","event_id":"E","position":"doctor"}]}`,
	}
	r := newTestReconciler(local, nil)

	ds := r.LoadDataset(context.Background(), DefaultOptions("E"))
	require.Len(t, ds.Participants, 1)
	assert.Equal(t, LabelMedical, ds.Participants[0].Position)
	assert.Equal(t, SourceParticipantCache, ds.Participants[0].Source)

	ds = r.LoadDataset(context.Background(), DefaultOptions("F"))
	assert.Empty(t, ds.Participants)

	local[kv.ParticipantCacheKey("E")] = `[{"name":"钱一","eventId":"E"}]`
	r = newTestReconciler(local, nil)
	ds = r.LoadDataset(context.Background(), DefaultOptions("E"))
	require.Len(t, ds.Participants, 1)
	assert.Equal(t, "钱一", ds.Participants[0].Name)
}

func TestLoadDataset_ChineseCollation(t *testing.T) {
	local := map[string]string{
		kv.KeyPlayerList: `[
			{"name":"张三","eventId":"E"},
			{"name":"李四","eventId":"E"},
			{"name":"王五","eventId":"E"}
		]`,
	}
	r := newTestReconciler(local, nil)

	ds := r.LoadDataset(context.Background(), DefaultOptions("E"))

	var names []string
	for _, rec := range ds.Participants {
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"李四", "王五", "张三"}, names)
}

func TestResolveTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("SessionBackendTeam", func(t *testing.T) {
		r := newTestReconciler(map[string]string{
			kv.CreatedTeamsKey("X"): `[{"id":"T","eventId":"E","teamName":"本地队"}]`,
		}, map[string]string{
			kv.SessionTeamKey("T"): `{"id":"T","event_id":"E","teamName":"后端队"}`,
		})
		team := r.ResolveTeam(ctx, "E", "T", Identity{})
		require.NotNil(t, team)
		assert.Equal(t, TeamSourceBackend, team.Source)
		assert.Equal(t, "后端队", team.TeamName)
	})

	t.Run("SessionTeamOfOtherEvent", func(t *testing.T) {
		r := newTestReconciler(map[string]string{
			kv.CreatedTeamsKey("X"): `[{"id":"T","eventId":"E","teamName":"本地队"}]`,
		}, map[string]string{
			kv.SessionTeamKey("T"): `{"id":"T","event_id":"OTHER"}`,
		})
		team := r.ResolveTeam(ctx, "E", "T", Identity{})
		require.NotNil(t, team)
		assert.Equal(t, kv.CreatedTeamsKey("X"), team.Source)
		assert.Equal(t, "本地队", team.TeamName)
		assert.True(t, team.IsCreated)
	})

	t.Run("IdentityCreatedTeam", func(t *testing.T) {
		local := map[string]string{
			kv.CreatedTeamsKey("U"): `[{"id":"T1","eventId":"E","isCreated":true}]`,
			kv.CreatedTeamsKey("V"): `[{"id":"T2","eventId":"E","isCreated":true}]`,
		}
		r := newTestReconciler(local, nil)

		team := r.ResolveTeam(ctx, "E", "", Identity{UserID: "U"})
		require.NotNil(t, team)
		assert.Equal(t, "T1", team.ID)
		assert.Equal(t, kv.CreatedTeamsKey("U"), team.Source)

		assert.Nil(t, r.ResolveTeam(ctx, "E", "", Identity{}))
	})

	t.Run("SubmittedTeamIsBackend", func(t *testing.T) {
		r := newTestReconciler(map[string]string{
			kv.CreatedTeamsKey("U"): `[
				{"id":"T0","eventId":"OTHER","isCreated":true,"submittedForReview":true},
				{"id":"T1","eventId":"E","isCreated":true,"submitted_for_review":true}
			]`,
		}, nil)
		team := r.ResolveTeam(ctx, "E", "", Identity{Names: []string{"张三", "U"}})
		require.NotNil(t, team)
		assert.Equal(t, "T1", team.ID)
		assert.Equal(t, TeamSourceBackend, team.Source)
		assert.True(t, team.SubmittedForReview)
	})

	t.Run("Application", func(t *testing.T) {
		r := newTestReconciler(map[string]string{
			kv.KeyTeamApplications: `[
				{"status":"rejected","eventId":"E","teamId":"T8","userId":"42"},
				{"status":"approved","eventId":"E","teamId":"T9","teamName":"申请队","teamLeader":"李","userId":"42"}
			]`,
		}, nil)
		team := r.ResolveTeam(ctx, "E", "", Identity{UserID: "42"})
		require.NotNil(t, team)
		assert.Equal(t, "T9", team.ID)
		assert.Equal(t, "申请队", team.TeamName)
		assert.Equal(t, "李", team.LeaderName)
		assert.False(t, team.IsCreated)
		assert.Equal(t, TeamSourceApplications, team.Source)

		assert.Nil(t, r.ResolveTeam(ctx, "E", "", Identity{UserID: "7"}))
	})

	t.Run("SnapshotFallback", func(t *testing.T) {
		r := newTestReconciler(map[string]string{
			kv.SnapshotKey("E"): `[{"teamId":"S1","team":{"teamName":"快照队"}}]`,
		}, nil)
		team := r.ResolveTeam(ctx, "E", "", Identity{})
		require.NotNil(t, team)
		assert.Equal(t, "S1", team.ID)
		assert.Equal(t, "快照队", team.TeamName)
		assert.Equal(t, TeamSourceSnapshot, team.Source)
	})

	t.Run("NoEvent", func(t *testing.T) {
		r := newTestReconciler(createdTeamScenario(), nil)
		assert.Nil(t, r.ResolveTeam(ctx, "", "T", Identity{}))
	})
}

func TestLoadDataset_SnapshotOfOtherTeamIgnored(t *testing.T) {
	local := createdTeamScenario()
	local[kv.SnapshotKey("E")] = `[{"teamId":"X","team":{"id":"X","teamName":"别队"},"players":[{"name":"Zed","eventId":"E"}]}]`
	r := newTestReconciler(local, nil)

	ds := r.LoadDataset(context.Background(), Options{EventID: "E", PreferSnapshot: true})

	require.NotNil(t, ds.Team)
	assert.Equal(t, "T", ds.Team.ID)
	assert.Equal(t, Meta{Total: 3, Players: 2, Staff: 1, Source: DatasetSourceLocal}, ds.Meta)
	for _, rec := range ds.Participants {
		assert.NotEqual(t, "Zed", rec.Name)
	}

	t.Run("ExplicitTeam", func(t *testing.T) {
		ds := r.LoadDataset(context.Background(), Options{EventID: "E", TeamID: "T", PreferSnapshot: true})
		require.NotNil(t, ds.Team)
		assert.Equal(t, "T", ds.Team.ID)
		assert.Equal(t, DatasetSourceLocal, ds.Meta.Source)
		assert.Equal(t, 3, ds.Meta.Total)
	})
}

func TestInScope(t *testing.T) {
	tests := []struct {
		name   string
		obj    kv.Object
		teamID string
		want   bool
	}{
		{"OtherEvent", kv.Object{"eventId": "F", "teamId": "T"}, "T", false},
		{"NoTeamFilter", kv.Object{"eventId": "E", "teamId": "X"}, "", true},
		{"RecordWithoutTeam", kv.Object{"eventId": "E"}, "T", true},
		{"SameTeam", kv.Object{"eventId": "E", "team_id": "T"}, "T", true},
		{"PaddedTeam", kv.Object{"eventId": "E", "teamId": " T "}, "T", true},
		{"NumericTeam", kv.Object{"eventId": "E", "teamId": float64(7)}, "7", true},
		{"OtherTeam", kv.Object{"eventId": "E", "teamId": "X"}, "T", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inScope(tt.obj, "E", tt.teamID))
		})
	}
}
