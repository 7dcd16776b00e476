package cmd

import (
	"fmt"
	"io"
	"strings"

	"roster-manager/core/reconcile"
)

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printTeam(w io.Writer, team *reconcile.Team) {
	if team == nil {
		fmt.Fprintln(w, "Team: -")
		return
	}
	fmt.Fprintf(w, "Team: %s (%s)  source=%s\n", team.TeamName, team.ID, team.Source)
	if team.LeaderName != "" || team.LeaderPhone != "" {
		fmt.Fprintf(w, "Leader: %s %s\n", orDash(team.LeaderName), team.LeaderPhone)
	}
	if team.SubmittedForReview {
		fmt.Fprintf(w, "Submitted: %s\n", orDash(team.SubmittedAt))
	}
}

func printParticipants(w io.Writer, records []reconcile.Record) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		role := r.Position
		if !r.IsPrimaryRole {
			role += "*"
		}
		rows = append(rows, []string{
			r.Name,
			role,
			r.Gender,
			orDash(r.Age.String()),
			r.MaskedIDCard,
			orDash(r.TeamName),
			orDash(strings.Join(r.SelectedEvents, "、")),
			r.Source,
		})
	}
	printTable(w, []string{"NAME", "ROLE", "GENDER", "AGE", "ID CARD", "TEAM", "EVENTS", "SOURCE"}, rows)
}
