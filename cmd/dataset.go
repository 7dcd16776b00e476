package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"roster-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	teamFlag      string
	userFlag      []string
	userIDFlag    string
	pendingFlag   bool
	snapshotFlag  bool
	noPlayersFlag bool
	noStaffFlag   bool
	jsonFlag      bool
)

// datasetCmd prints the reconciled participant dataset of an event.
var datasetCmd = &cobra.Command{
	Use:   "dataset <eventId>",
	Short: "Print the participant dataset of an event",
	Long: `Reconciles every participant bucket of an event into one dataset and prints it.

Examples:
  # All participants of event 12
  dataset 12

  # One team, as seen by user 张三, including pending applications
  dataset 12 --team 7 --user 张三 --pending

  # Players only, written to a JSON report file
  dataset 12 --no-staff --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		opts := reconcile.Options{
			EventID:        args[0],
			TeamID:         teamFlag,
			ExcludePlayers: noPlayersFlag,
			ExcludeStaff:   noStaffFlag,
			IncludePending: pendingFlag,
			PreferSnapshot: snapshotFlag,
			Identity:       identityFlags(),
		}
		ds := rt.reconciler().LoadDataset(cmd.Context(), opts)

		if jsonFlag {
			filename := fmt.Sprintf("dataset_%s_%d.json", opts.EventID, time.Now().Unix())
			data, err := json.MarshalIndent(ds, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			rt.log.Info("Dataset report saved", zap.String("file", filename), zap.Int("total", ds.Meta.Total))
		}

		out := cmd.OutOrStdout()
		printTeam(out, ds.Team)
		fmt.Fprintln(out)
		printParticipants(out, ds.Participants)
		fmt.Fprintf(out, "\nTotal: %d  Players: %d  Staff: %d  Source: %s\n",
			ds.Meta.Total, ds.Meta.Players, ds.Meta.Staff, ds.Meta.Source)
		return nil
	},
}

// teamCmd prints the team context resolved for an event.
var teamCmd = &cobra.Command{
	Use:   "team <eventId>",
	Short: "Print the team context resolved for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		team := rt.reconciler().ResolveTeam(cmd.Context(), args[0], teamFlag, identityFlags())
		if team == nil {
			return fmt.Errorf("no team resolvable for event %s", args[0])
		}
		printTeam(cmd.OutOrStdout(), team)
		return nil
	},
}

// idcardCmd prints what an ID card number reveals.
var idcardCmd = &cobra.Command{
	Use:   "idcard <idCard>",
	Short: "Derive gender, age and masked form of an ID card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		age := reconcile.AgeFromIDCard(id, time.Now())
		printTable(cmd.OutOrStdout(), []string{"GENDER", "AGE", "MASKED"}, [][]string{
			{reconcile.NormalizeGender("", id), orDash(age.String()), reconcile.MaskIDCard(id)},
		})
	},
}

func identityFlags() reconcile.Identity {
	return reconcile.Identity{UserID: userIDFlag, Names: userFlag}
}

func init() {
	for _, c := range []*cobra.Command{datasetCmd, teamCmd} {
		c.Flags().StringVar(&teamFlag, "team", "", "Team ID")
		c.Flags().StringSliceVar(&userFlag, "user", nil, "Caller user name(s), in lookup order")
		c.Flags().StringVar(&userIDFlag, "user-id", "", "Caller user ID")
	}
	datasetCmd.Flags().BoolVar(&pendingFlag, "pending", false, "Count pending team applications")
	datasetCmd.Flags().BoolVar(&snapshotFlag, "snapshot", false, "Seed from the submitted team snapshot")
	datasetCmd.Flags().BoolVar(&noPlayersFlag, "no-players", false, "Leave out players")
	datasetCmd.Flags().BoolVar(&noStaffFlag, "no-staff", false, "Leave out coaches, medics and staff")
	datasetCmd.Flags().BoolVar(&jsonFlag, "json", false, "Also save the dataset as a JSON report file")

	RootCmd.AddCommand(datasetCmd, teamCmd, idcardCmd)
}
