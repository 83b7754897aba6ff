package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jgfrigo2/medtracker2/internal/model"
	"github.com/jgfrigo2/medtracker2/internal/remote"
	"github.com/jgfrigo2/medtracker2/internal/render"
	"github.com/jgfrigo2/medtracker2/internal/store"
)

func newLoginCmd() *cobra.Command {
	var apiKey, binID string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials and load data from the document service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				creds := remote.Credentials{APIKey: apiKey, BinID: binID}
				if err := st.Login(ctx, creds); err != nil {
					return err
				}
				snap := st.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "logged in: %d days, %d medications\n",
					len(snap.HealthData), len(snap.Medications))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Document service master key")
	cmd.Flags().StringVar(&binID, "bin-id", "", "Document id holding the bundle")
	_ = cmd.MarkFlagRequired("api-key")
	_ = cmd.MarkFlagRequired("bin-id")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear credentials and local data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				st.Logout()
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state and data summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", st.State())
				if st.State() != store.StateReady {
					return nil
				}
				if st.Saving() {
					fmt.Fprintln(cmd.OutOrStdout(), "saving…")
				}
				snap := st.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "days: %d\nmedications: %d\npattern slots: %d\n",
					len(snap.HealthData), len(snap.Medications), len(snap.Pattern))
				return nil
			})
		},
	}
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show or edit one day's time-slot grid",
	}
	cmd.AddCommand(newDayShowCmd(), newDaySetCmd(), newDayApplyPatternCmd())
	return cmd
}

func newDayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Render the day's severity chart (or list when no values)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), render.Day(date, st.Day(date)))
				return nil
			})
		},
	}
}

func newDaySetCmd() *cobra.Command {
	var (
		slot       string
		value      int
		clearValue bool
		meds       []string
		comment    string
	)
	cmd := &cobra.Command{
		Use:   "set [date]",
		Short: "Update one time slot of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			if !model.IsSlot(slot) {
				return fmt.Errorf("invalid slot %q (half-hour labels 08:00 .. 23:30)", slot)
			}
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				day := st.Day(date)
				e := day.Entry(slot)
				if clearValue {
					e.Value = model.Severity{}
				} else if cmd.Flags().Changed("value") {
					if value < model.MinSeverity || value > model.MaxSeverity {
						return fmt.Errorf("value must be between %d and %d", model.MinSeverity, model.MaxSeverity)
					}
					e.Value = model.SeverityOf(value)
				}
				if cmd.Flags().Changed("meds") {
					e.Medications = meds
				}
				if cmd.Flags().Changed("comment") {
					e.Comments = comment
				}
				day[slot] = e
				if err := st.RecordDay(date, day); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), render.Day(date, st.Day(date)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "", "Time-slot label, e.g. 08:30")
	cmd.Flags().IntVar(&value, "value", 0, "Severity value (0-10)")
	cmd.Flags().BoolVar(&clearValue, "clear-value", false, "Remove the recorded value")
	cmd.Flags().StringSliceVar(&meds, "meds", nil, "Medications taken in this slot")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-text comment")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

func newDayApplyPatternCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply-pattern [date]",
		Short: "Union the standard pattern's medications into the day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				if err := st.ApplyStandardPattern(date); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), render.Day(date, st.Day(date)))
				return nil
			})
		},
	}
}

func newMedsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meds",
		Short: "Manage the medication catalog",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the catalog in sorted order",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(ctx context.Context, st *store.Store) error {
					if err := requireReady(st); err != nil {
						return err
					}
					for _, m := range st.Medications() {
						fmt.Fprintln(cmd.OutOrStdout(), m)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a medication",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(ctx context.Context, st *store.Store) error {
					if err := requireReady(st); err != nil {
						return err
					}
					return st.AddMedication(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a medication everywhere it occurs",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				oldName := args[0]
				newName := strings.TrimSpace(args[1])
				if newName == "" || newName == oldName {
					return nil
				}
				return withStore(cmd, func(ctx context.Context, st *store.Store) error {
					if err := requireReady(st); err != nil {
						return err
					}
					return st.RenameMedication(oldName, newName)
				})
			},
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Delete a medication from the catalog, all days and the pattern",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(ctx context.Context, st *store.Store) error {
					if err := requireReady(st); err != nil {
						return err
					}
					return st.DeleteMedication(args[0])
				})
			},
		},
	)
	return cmd
}

func newPatternCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Manage the standard medication-by-slot pattern",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the pattern",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(ctx context.Context, st *store.Store) error {
					if err := requireReady(st); err != nil {
						return err
					}
					p := st.Pattern()
					for _, slot := range model.Slots() {
						if meds, ok := p[slot]; ok {
							fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", slot, strings.Join(meds, ", "))
						}
					}
					return nil
				})
			},
		},
		newPatternSetCmd(),
		&cobra.Command{
			Use:   "clear <slot>",
			Short: "Remove a slot from the pattern",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				slot := args[0]
				return withStore(cmd, func(ctx context.Context, st *store.Store) error {
					if err := requireReady(st); err != nil {
						return err
					}
					p := st.Pattern()
					delete(p, slot)
					return st.SetStandardPattern(p)
				})
			},
		},
	)
	return cmd
}

func newPatternSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> <medication>...",
		Short: "Set the usual medications for a slot",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := args[0]
			if !model.IsSlot(slot) {
				return fmt.Errorf("invalid slot %q (half-hour labels 08:00 .. 23:30)", slot)
			}
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				p := st.Pattern()
				p[slot] = args[1:]
				return st.SetStandardPattern(p)
			})
		},
	}
}

func newCalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cal [yyyy-MM]",
		Short: "Show a month calendar marking days that carry data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if len(args) == 1 {
				var err error
				ref, err = time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("invalid month %q (want yyyy-MM)", args[0])
				}
			}
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				out := render.Calendar(ref.Year(), ref.Month(), st.HasData)
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the whole bundle as pretty-printed JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				data, err := st.ExportBundle()
				if err != nil {
					return err
				}
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}
				if err := os.WriteFile(args[0], data, 0o600); err != nil {
					return err
				}
				log.Info().Str("file", args[0]).Msg("bundle exported")
				return nil
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a previously exported bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if err := requireReady(st); err != nil {
					return err
				}
				if err := st.ImportBundle(data); err != nil {
					if errors.Is(err, model.ErrInvalidBundle) {
						return fmt.Errorf("%s does not look like an exported bundle: %w", args[0], err)
					}
					return err
				}
				snap := st.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "imported: %d days, %d medications\n",
					len(snap.HealthData), len(snap.Medications))
				return nil
			})
		},
	}
}
