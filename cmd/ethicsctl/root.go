package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ethicsreview/internal/adapters/ethereum"
	"ethicsreview/internal/config"
	"ethicsreview/internal/domain"
	"ethicsreview/internal/logging"
	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
	"ethicsreview/internal/services/commands"
	"ethicsreview/internal/services/presentation"
	"ethicsreview/internal/services/readmodel"
	"ethicsreview/internal/services/session"
)

var (
	flagYes     bool
	flagVerbose bool
)

// app is the per-invocation wiring shared by subcommands.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	out      io.Writer
	notes    *consoleNotifier
	sessions *session.Manager
	loader   *readmodel.Loader
	commands *commands.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, cfgErr := config.Load()
	level := cfg.LogLevel
	if !flagVerbose {
		level = "warn"
	}
	log := logging.New("development", level)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("configuration")
	}

	out := cmd.OutOrStdout()
	notes := &consoleNotifier{out: out, errOut: cmd.ErrOrStderr()}
	approve := promptApprover(cmd.InOrStdin(), out)
	if flagYes {
		approve = ethereum.AutoApprove
	}

	var provider ports.Provider
	wallet, err := ethereum.Dial(cmd.Context(), ethereum.WalletConfig{
		RPCURL:             cfg.RPCURL,
		Contract:           cfg.ContractAddress,
		KeystoreDir:        cfg.KeystoreDir,
		KeystorePassphrase: cfg.KeystorePassphrase,
		PrivateKey:         cfg.PrivateKey,
		Approve:            approve,
	})
	if err != nil {
		log.Debug().Err(err).Msg("dial")
	} else {
		provider = wallet
	}

	sessions := session.New(provider, cfg.ExpectedChainID, notes, nil, logging.Component(log, "session"))
	loader := readmodel.NewLoader(cfg.FetchWorkers, cfg.CallTimeout, metrics.New(), logging.Component(log, "readmodel"))
	reader := readmodel.NewService(loader, sessions, summarySink{out: out}, logging.Component(log, "readmodel"))
	return &app{
		cfg:      cfg,
		log:      log,
		out:      out,
		notes:    notes,
		sessions: sessions,
		loader:   loader,
		commands: commands.New(presentation.NewForms(), reader, notes, nil, logging.Component(log, "commands")),
	}, nil
}

// connect requests wallet access. Wrong-network is advisory and does not stop
// the command.
func (a *app) connect(ctx context.Context) (*ports.Connection, error) {
	return a.sessions.Connect(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ethicsctl",
		Short:         "Work with the research ethics review contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "sign transactions without prompting")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log at the configured LOG_LEVEL")

	root.AddCommand(
		newNetworkCmd(),
		newListCmd(),
		newStatsCmd(),
		newProgressCmd(),
		newAdminCmd(),
		newSubmitProposalCmd(),
		newRegisterReviewerCmd(),
		newSubmitReviewCmd(),
		newAssignReviewersCmd(),
	)
	return root
}

func newNetworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Connect the wallet and report account and chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			name := presentation.NetworkName(a.cfg.ExpectedChainID)
			status := "✓ " + name
			if !conn.Session.OnChain(a.cfg.ExpectedChainID) {
				status = "⚠ Wrong Network - Please switch to " + name
			}
			fmt.Fprintf(a.out, "Connected: %s\nChain: %s\n%s\n",
				presentation.ShortAddress(conn.Session.Account), conn.Session.ChainID, status)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List proposals and reviewers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			v := a.loader.LoadData(cmd.Context(), conn.Contract)
			printRegions(a.out, presentation.Render(v, a.cfg.DateLocation))
			return nil
		},
	}
}

func printRegions(out io.Writer, r presentation.Regions) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROPOSAL\tSTATUS\tSUBMITTER\tSUBMITTED\tDEADLINE\tPROGRESS")
	for _, c := range r.Proposals.Cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Title, c.StatusText, c.Submitter, c.Submitted, c.Deadline, c.Progress)
	}
	if r.Proposals.Message != "" {
		fmt.Fprintln(tw, r.Proposals.Message)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "REVIEWER\tROLE\tSTATUS\tTOTAL REVIEWS\tREGISTERED")
	for _, c := range r.Reviewers.Cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.Title, c.RoleText, c.Status, c.TotalReviews, c.Registered)
	}
	if r.Reviewers.Message != "" {
		fmt.Fprintln(tw, r.Reviewers.Message)
	}
	_ = tw.Flush()
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and review counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			res := a.loader.LoadStats(cmd.Context(), conn.Contract)
			if res.Err != nil {
				return res.Err
			}
			s := res.Stats
			fmt.Fprintf(a.out, "Proposals: %d\nReviewers: %d\nActive reviews: %d\nCompleted reviews: %d\n",
				s.TotalProposals, s.TotalReviewers, s.ActiveReviewCount, s.CompletedReviewCount)
			return nil
		},
	}
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <proposal-id>",
		Short: "Show which assigned reviewers have submitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || id == 0 {
				return domain.InvalidInput("id", "Proposal ID is required")
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.CallTimeout)
			defer cancel()
			p, err := conn.Contract.ReviewProgress(ctx, uint32(id))
			if err != nil {
				a.notes.Error(err.Error())
				return err
			}
			if len(p.ReviewerIDs) == 0 {
				fmt.Fprintf(a.out, "Proposal #%d has no assigned reviewers\n", id)
				return nil
			}
			for i, rid := range p.ReviewerIDs {
				state := "pending"
				if i < len(p.Completed) && p.Completed[i] {
					state = "submitted"
				}
				fmt.Fprintf(a.out, "Reviewer #%d: %s\n", rid, state)
			}
			return nil
		},
	}
}

func newAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Show the contract administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.CallTimeout)
			defer cancel()
			admin, err := conn.Contract.Admin(ctx)
			if err != nil {
				a.notes.Error(err.Error())
				return err
			}
			fmt.Fprintln(a.out, admin.Hex())
			if admin == conn.Session.Account {
				fmt.Fprintln(a.out, "(this account)")
			}
			return nil
		},
	}
}

// write wires a state-changing subcommand: connect, then run under TX_TIMEOUT.
func write(cmd *cobra.Command, run func(ctx context.Context, a *app, conn *ports.Connection) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	conn, err := a.connect(cmd.Context())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.TxTimeout)
	defer cancel()
	return run(ctx, a, conn)
}

func newSubmitProposalCmd() *cobra.Command {
	var in commands.ProposalInput
	c := &cobra.Command{
		Use:   "submit-proposal",
		Short: "Submit a research proposal for ethics review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return write(cmd, func(ctx context.Context, a *app, conn *ports.Connection) error {
				return a.commands.SubmitProposal(ctx, conn, in)
			})
		},
	}
	c.Flags().StringVar(&in.RiskLevel, "risk", "", "risk level (1-10)")
	c.Flags().StringVar(&in.EthicsScore, "ethics", "", "ethics score (1-100)")
	c.Flags().StringVar(&in.ReviewPeriod, "period", "", "review period in days (7-90)")
	return c
}

func newRegisterReviewerCmd() *cobra.Command {
	var in commands.ReviewerInput
	c := &cobra.Command{
		Use:   "register-reviewer",
		Short: "Register the connected account as a reviewer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return write(cmd, func(ctx context.Context, a *app, conn *ports.Connection) error {
				return a.commands.RegisterReviewer(ctx, conn, in)
			})
		},
	}
	c.Flags().StringVar(&in.ExperienceYears, "experience", "", "years of experience (1-20)")
	c.Flags().StringVar(&in.Role, "role", "0", "role: 0 junior, 1 senior, 2 expert")
	c.Flags().StringVar(&in.QualificationScore, "score", "", "qualification score (1-1000)")
	return c
}

func newSubmitReviewCmd() *cobra.Command {
	var in commands.ReviewInput
	c := &cobra.Command{
		Use:   "submit-review",
		Short: "Submit an anonymous review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return write(cmd, func(ctx context.Context, a *app, conn *ports.Connection) error {
				return a.commands.SubmitReview(ctx, conn, in)
			})
		},
	}
	c.Flags().StringVar(&in.ProposalID, "proposal", "", "proposal id")
	c.Flags().StringVar(&in.ReviewerID, "reviewer", "", "reviewer id")
	c.Flags().StringVar(&in.EthicsRating, "rating", "", "ethics rating (1-10)")
	c.Flags().StringVar(&in.RiskAssessment, "risk", "", "risk assessment (1-10)")
	c.Flags().StringVar(&in.Recommendation, "recommendation", "1", "recommendation code")
	return c
}

func newAssignReviewersCmd() *cobra.Command {
	var in commands.AssignmentInput
	c := &cobra.Command{
		Use:   "assign-reviewers",
		Short: "Assign 2 to 5 reviewers to a proposal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return write(cmd, func(ctx context.Context, a *app, conn *ports.Connection) error {
				return a.commands.AssignReviewers(ctx, conn, in)
			})
		},
	}
	c.Flags().StringVar(&in.ProposalID, "proposal", "", "proposal id")
	c.Flags().StringVar(&in.ReviewerIDs, "reviewers", "", "reviewer ids, comma separated")
	return c
}
