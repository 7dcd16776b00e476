package reconcile

import (
	"strings"
	"time"

	"roster-manager/core/kv"
	"roster-manager/core/utils"
)

// DefaultStatus is the status of a record that carries none.
const DefaultStatus = "registered"

// UnsetTeamName is shown for a team without a name.
const UnsetTeamName = "未设置"

// baseRecord is the single normalization boundary: obj must already carry the
// canonical field names (idCard, name, teamId, ...) its source mapper resolved.
func baseRecord(obj kv.Object, source string, now time.Time) Record {
	idCard := obj.String("idCard")
	name := obj.String("name", "real_name")
	uniqueKey := BuildUniqueKey(name, idCard)
	position := NormalizePosition(obj.String("position"))

	age := AgeFromIDCard(idCard, now)
	if explicit := obj.Value("age"); explicit != nil {
		if _, ok := utils.ToInt(explicit); ok {
			age = parseAge(explicit)
		}
	}

	id := obj.String("id", "player_id", "staff_id")
	if id == "" {
		id = uniqueKey
	}
	display := name
	if display == "" {
		display = UnknownName
	}
	status := obj.String("status")
	if status == "" {
		status = DefaultStatus
	}

	return Record{
		ID:               id,
		UniqueKey:        uniqueKey,
		Name:             display,
		Gender:           NormalizeGender(obj.String("gender"), idCard),
		Age:              age,
		IDCard:           idCard,
		MaskedIDCard:     MaskIDCard(idCard),
		Phone:            obj.String("phone"),
		TeamName:         obj.String("teamName", "team_name", "team"),
		TeamID:           obj.String("teamId", "team_id"),
		EventID:          obj.String("eventId", "event_id"),
		Position:         position,
		RoleType:         RoleTypeOf(position),
		SelectedEvents:   ParseSelectedEvents(obj.Value("selectedEvents", "selected_events")),
		CompetitionEvent: obj.String("competition_event", "competitionEvent"),
		PairPartner:      obj.String("pairPartner", "pair_partner_name"),
		PairRegistered:   obj.Bool("pairRegistered", "pair_registered"),
		TeamRegistered:   obj.Bool("teamRegistered", "team_registered"),
		SingleRegistered: obj.Bool("singleRegistered", "single_registered"),
		Status:           status,
		Source:           source,
	}
}

// with returns a copy of obj with each non-empty canonical value set.
func with(obj kv.Object, fields map[string]string) kv.Object {
	out := obj.Clone()
	for k, v := range fields {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func fromPlayerList(obj kv.Object) kv.Object {
	return with(obj, map[string]string{
		"idCard": obj.String("idCard", "id_card", "registration_number"),
	})
}

func fromStaffList(obj kv.Object) kv.Object {
	return with(obj, map[string]string{
		"idCard": obj.String("idCard", "id_card"),
	})
}

func fromApplication(obj kv.Object) kv.Object {
	staff := obj.Object("staffData")
	if staff == nil {
		staff = kv.Object{}
	}
	name := obj.String("applicantName")
	if name == "" {
		name = staff.String("real_name", "name")
	}
	if name == "" {
		name = obj.String("name")
	}
	idCard := obj.String("applicantIdCard", "idCard")
	if idCard == "" {
		idCard = staff.String("idCard", "id_card")
	}
	out := with(obj, map[string]string{
		"idCard":   idCard,
		"phone":    obj.String("applicantPhone", "phone"),
		"name":     name,
		"position": obj.String("position", "role", "type"),
		"teamName": obj.String("teamName", "team"),
	})
	if v := obj.Value("selectedEvents", "selected_events"); v != nil {
		out["selectedEvents"] = v
	}
	return out
}

func fromSnapshot(obj kv.Object, snap kv.Snapshot) kv.Object {
	teamName := obj.String("teamName", "team_name")
	if teamName == "" && snap.Team != nil {
		teamName = snap.Team.String("teamName", "name")
	}
	teamID := obj.String("teamId", "team_id")
	if teamID == "" {
		teamID = snap.TeamID
	}
	return with(obj, map[string]string{
		"idCard":   obj.String("idCard", "id_card"),
		"teamId":   teamID,
		"teamName": teamName,
	})
}

func fromParticipantCache(obj kv.Object, teamID string) kv.Object {
	id := obj.String("teamId", "team_id")
	if id == "" {
		id = teamID
	}
	return with(obj, map[string]string{
		"idCard": obj.String("idCard", "id_card"),
		"teamId": id,
	})
}

// normalizeTeam builds a Team from any stored team shape. It returns nil when
// the object has no id.
func normalizeTeam(obj kv.Object, source string) *Team {
	if obj == nil {
		return nil
	}
	id := obj.String("teamId", "id", "team_id")
	if id == "" {
		return nil
	}
	name := obj.String("teamName", "team_name", "name", "team")
	if name == "" {
		name = UnsetTeamName
	}
	created := true
	if obj.Has("isCreated") {
		created = utils.ToBool(obj["isCreated"])
	}
	return &Team{
		ID:                 id,
		TeamName:           name,
		TeamType:           obj.String("teamType", "team_type", "type"),
		LeaderName:         obj.String("leaderName", "leader_name", "leader", "contactName"),
		LeaderPhone:        obj.String("leaderPhone", "leader_phone", "phone", "contactPhone"),
		LeaderEmail:        obj.String("leaderEmail", "leader_email", "email"),
		TeamAddress:        obj.String("teamAddress", "team_address", "address"),
		TeamDescription:    obj.String("teamDescription", "team_description", "description"),
		EventID:            teamEventID(obj),
		EventName:          obj.String("eventName", "event_name"),
		SubmittedForReview: obj.Bool("submittedForReview", "submitted_for_review", "submitted"),
		SubmittedAt:        obj.String("submittedAt", "submitted_at"),
		IsCreated:          created,
		Source:             source,
	}
}

func teamEventID(obj kv.Object) string {
	return obj.String("eventId", "event_id", "eventID")
}

func teamID(obj kv.Object) string {
	return obj.String("teamId", "id", "team_id")
}

func sameID(a, b string) bool {
	return a != "" && strings.TrimSpace(a) == strings.TrimSpace(b)
}
