package reconcile

import (
	"encoding/json"
	"strconv"
)

// Canonical role labels.
const (
	LabelPlayer  = "参赛人员"
	LabelCoach   = "教练"
	LabelMedical = "医务人员"
	LabelStaff   = "随行人员"
)

// Coarse role categories.
const (
	RolePlayer  = "player"
	RoleCoach   = "coach"
	RoleMedical = "medical"
	RoleStaff   = "staff"
)

// UnknownRolePriority sorts free-text positions after every recognised role.
const UnknownRolePriority = 99

// Record sources, in the order they are gathered.
const (
	SourceSnapshot         = "submittedSnapshot"
	SourcePlayerList       = "playerList"
	SourceStaffList        = "staffList"
	SourceTeamApplications = "teamApplications"
	SourceParticipantCache = "participantCache"
)

// Team sources.
const (
	TeamSourceBackend      = "backend"
	TeamSourceSnapshot     = "snapshot"
	TeamSourceApplications = "teamApplications"
	TeamSourceExplicit     = "explicit"
)

// Dataset sources reported in Meta.Source.
const (
	DatasetSourceLocal    = "local"
	DatasetSourceSnapshot = "snapshot"
)

// Age is a whole number of years in [0,120], or unknown.
// It encodes to JSON as a number, or "" when unknown.
type Age struct {
	years int
	known bool
}

// NoAge is the unknown age.
var NoAge = Age{}

// AgeOf returns the Age for years, unknown when outside [0,120].
func AgeOf(years int) Age {
	if years < 0 || years > 120 {
		return NoAge
	}
	return Age{years: years, known: true}
}

// Years returns the age and whether it is known.
func (a Age) Years() (int, bool) { return a.years, a.known }

// IsKnown reports whether the age is known.
func (a Age) IsKnown() bool { return a.known }

func (a Age) String() string {
	if !a.known {
		return ""
	}
	return strconv.Itoa(a.years)
}

func (a Age) MarshalJSON() ([]byte, error) {
	if !a.known {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(a.years)), nil
}

func (a *Age) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = parseAge(v)
	return nil
}

// Record is one normalized participant entry of a dataset.
type Record struct {
	ID               string   `json:"id"`
	UniqueKey        string   `json:"uniqueKey"`
	Name             string   `json:"name"`
	Gender           string   `json:"gender"`
	Age              Age      `json:"age"`
	IDCard           string   `json:"idCard"`
	MaskedIDCard     string   `json:"maskedIdCard"`
	Phone            string   `json:"phone"`
	TeamName         string   `json:"teamName"`
	TeamID           string   `json:"teamId"`
	EventID          string   `json:"eventId"`
	Position         string   `json:"position"`
	RoleType         string   `json:"roleType"`
	SelectedEvents   []string `json:"selectedEvents"`
	CompetitionEvent string   `json:"competition_event"`
	PairPartner      string   `json:"pairPartner"`
	PairRegistered   bool     `json:"pairRegistered"`
	TeamRegistered   bool     `json:"teamRegistered"`
	SingleRegistered bool     `json:"singleRegistered"`
	Status           string   `json:"status"`
	Source           string   `json:"source"`
	IsPrimaryRole    bool     `json:"isPrimaryRole"`
}

// Team is the resolved team context of an event.
type Team struct {
	ID                 string `json:"id"`
	TeamName           string `json:"teamName"`
	TeamType           string `json:"teamType"`
	LeaderName         string `json:"leaderName"`
	LeaderPhone        string `json:"leaderPhone"`
	LeaderEmail        string `json:"leaderEmail"`
	TeamAddress        string `json:"teamAddress"`
	TeamDescription    string `json:"teamDescription"`
	EventID            string `json:"eventId"`
	EventName          string `json:"eventName"`
	SubmittedForReview bool   `json:"submittedForReview"`
	SubmittedAt        string `json:"submittedAt"`
	IsCreated          bool   `json:"isCreated"`
	Source             string `json:"source"`
}

// Meta summarises a dataset.
type Meta struct {
	Total   int    `json:"total"`
	Players int    `json:"players"`
	Staff   int    `json:"staff"`
	Source  string `json:"source"`
}

// Dataset is the reconciled participant view of one event (and team).
type Dataset struct {
	Team         *Team    `json:"team"`
	Participants []Record `json:"participants"`
	Meta         Meta     `json:"meta"`
}

// Identity is the caller on whose behalf a dataset is loaded.
type Identity struct {
	// UserID is the numeric account id (user_id / userId).
	UserID string
	// Names are the account names in lookup order (user_name, username, real_name).
	Names []string
}

// Keys returns the distinct non-empty identity values, names first.
func (i Identity) Keys() []string {
	seen := make(map[string]struct{}, len(i.Names)+1)
	var keys []string
	for _, v := range append(append([]string{}, i.Names...), i.UserID) {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		keys = append(keys, v)
	}
	return keys
}

// Primary returns the first identity key, or "".
func (i Identity) Primary() string {
	if keys := i.Keys(); len(keys) > 0 {
		return keys[0]
	}
	return ""
}

// Options controls LoadDataset. The zero value of every flag is its default.
type Options struct {
	// EventID is required; without it the dataset is empty.
	EventID string
	// TeamID optionally pins the team.
	TeamID string
	// ExcludePlayers drops player records.
	ExcludePlayers bool
	// ExcludeStaff drops non-player records.
	ExcludeStaff bool
	// IncludePending accepts pending team applications as a source.
	IncludePending bool
	// PreferSnapshot seeds the dataset from the submitted snapshot first.
	PreferSnapshot bool
	// Identity replaces the ambient session user.
	Identity Identity
}
