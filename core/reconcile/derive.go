package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"roster-manager/core/utils"

	"github.com/google/uuid"
)

// Gender labels.
const (
	GenderMale    = "男"
	GenderFemale  = "女"
	GenderUnknown = "-"
)

// UnknownName is shown for a record without any name field.
const UnknownName = "未知"

var positionLabels = map[string]string{
	"player":    LabelPlayer,
	"coach":     LabelCoach,
	"trainer":   LabelCoach,
	"assistant": LabelCoach,
	"medical":   LabelMedical,
	"doctor":    LabelMedical,
	"medic":     LabelMedical,
	"staff":     LabelStaff,
	"teamstaff": LabelStaff,
}

var rolePriorities = map[string]int{
	LabelPlayer:  0,
	LabelCoach:   1,
	LabelMedical: 2,
	LabelStaff:   3,
}

// NormalizePosition maps an English or canonical position to its canonical
// label. An empty position is a player; unrecognised text is kept as is.
func NormalizePosition(position string) string {
	p := strings.TrimSpace(position)
	if p == "" {
		return LabelPlayer
	}
	if label, ok := positionLabels[strings.ToLower(p)]; ok {
		return label
	}
	return p
}

// RoleTypeOf returns the coarse role category of a position.
// Anything that is not a player, coach or medic counts as staff.
func RoleTypeOf(position string) string {
	switch NormalizePosition(position) {
	case LabelPlayer:
		return RolePlayer
	case LabelCoach:
		return RoleCoach
	case LabelMedical:
		return RoleMedical
	default:
		return RoleStaff
	}
}

// RolePriority orders roles: player 0, coach 1, medical 2, staff 3.
// Unrecognised positions get UnknownRolePriority.
func RolePriority(position string) int {
	if p, ok := rolePriorities[NormalizePosition(position)]; ok {
		return p
	}
	return UnknownRolePriority
}

// GenderFromIDCard derives the gender from the order code parity of an
// 18-digit resident ID (17th character): odd is male, even is female.
// It returns "" when the card is too short or the character is not a digit.
func GenderFromIDCard(idCard string) string {
	runes := []rune(strings.TrimSpace(idCard))
	if len(runes) < 17 {
		return ""
	}
	d := runes[16]
	if d < '0' || d > '9' {
		return ""
	}
	if (d-'0')%2 == 0 {
		return GenderFemale
	}
	return GenderMale
}

// NormalizeGender canonicalises an explicit gender value, falling back to the
// ID card and then to GenderUnknown. Unrecognised explicit values are kept.
func NormalizeGender(value, idCard string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		if g := GenderFromIDCard(idCard); g != "" {
			return g
		}
		return GenderUnknown
	}
	switch strings.ToLower(v) {
	case GenderMale, "male", "m":
		return GenderMale
	case GenderFemale, "female", "f":
		return GenderFemale
	}
	return value
}

// AgeFromIDCard derives the age on now from the YYYYMMDD birth date at
// characters 7-14 of an ID card. Invalid dates and ages outside [0,120]
// yield NoAge.
func AgeFromIDCard(idCard string, now time.Time) Age {
	runes := []rune(strings.TrimSpace(idCard))
	if len(runes) < 14 {
		return NoAge
	}
	year, ok1 := digits(runes[6:10])
	month, ok2 := digits(runes[10:12])
	day, ok3 := digits(runes[12:14])
	if !ok1 || !ok2 || !ok3 {
		return NoAge
	}

	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birth.Year() != year || int(birth.Month()) != month || birth.Day() != day {
		return NoAge
	}

	age := now.Year() - year
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < day) {
		age--
	}
	return AgeOf(age)
}

func digits(rs []rune) (int, bool) {
	n := 0
	for _, r := range rs {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// MaskIDCard keeps the first 6 and last 4 characters of an ID card.
// Cards shorter than 8 characters are returned unmasked, an empty one as "-".
func MaskIDCard(idCard string) string {
	if idCard == "" {
		return GenderUnknown
	}
	runes := []rune(idCard)
	if len(runes) < 8 {
		return idCard
	}
	return string(runes[:6]) + "****" + string(runes[len(runes)-4:])
}

// BuildUniqueKey derives the identity key of a person: "<idCard>_<name>",
// then the ID card alone, then the name alone. Without either it returns a
// random anonymous key that never collides with another record.
func BuildUniqueKey(name, idCard string) string {
	n := strings.TrimSpace(name)
	id := strings.TrimSpace(idCard)
	switch {
	case id != "" && n != "":
		return id + "_" + n
	case id != "":
		return id
	case n != "":
		return n
	default:
		return "anon_" + uuid.NewString()
	}
}

// ParseSelectedEvents reads the event categories a participant entered.
// Accepts a JSON array, a JSON-encoded array string, or a plain string
// separated by '、' or ','. Blank and repeated entries are dropped.
func ParseSelectedEvents(raw any) []string {
	var items []string
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []any:
		for _, item := range v {
			items = append(items, utils.ToString(item))
		}
	case []string:
		items = v
	case string:
		items = parseSelectedEventsText(v)
	default:
		if s := utils.ToString(v); s != "" {
			items = []string{s}
		}
	}
	return uniqueStrings(nil, items)
}

func parseSelectedEventsText(raw string) []string {
	if raw == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		switch p := parsed.(type) {
		case []any:
			out := make([]string, 0, len(p))
			for _, item := range p {
				out = append(out, utils.ToString(item))
			}
			return out
		case nil:
			return nil
		case bool:
			if !p {
				return nil
			}
			return []string{strconv.FormatBool(p)}
		default:
			return []string{utils.ToString(p)}
		}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}
	for _, sep := range []string{"、", ","} {
		if strings.Contains(text, sep) {
			return strings.Split(text, sep)
		}
	}
	return []string{text}
}

// uniqueStrings appends the trimmed, non-empty values of add to dst that are
// not already present, keeping first-seen order.
func uniqueStrings(dst []string, add []string) []string {
	seen := make(map[string]struct{}, len(dst)+len(add))
	out := make([]string, 0, len(dst)+len(add))
	for _, s := range append(append([]string{}, dst...), add...) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func parseAge(v any) Age {
	if utils.IsBlank(v) {
		return NoAge
	}
	years, ok := utils.ToInt(v)
	if !ok {
		return NoAge
	}
	return AgeOf(years)
}
