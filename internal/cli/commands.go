package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/cartstore/internal/cart"
	"github.com/nikolayk812/cartstore/internal/domain"
	"github.com/nikolayk812/cartstore/internal/schedule"
	"github.com/nikolayk812/cartstore/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
)

var validate = newValidator()

type addInput struct {
	ID       string `key:"id" validate:"notblank"`
	Title    string `key:"title"`
	Image    string `key:"image"`
	Price    string `key:"price" validate:"omitempty,numeric,nonneg_decimal"`
	Currency string `key:"currency" validate:"omitempty,iso4217"`
}

func newValidator() *validator.Validate {
	v := validation.New()
	v.RegisterStructValidation(addInputStructValidation, addInput{})
	return v
}

// addInputStructValidation requires price and currency to be set together.
func addInputStructValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(addInput)
	if !ok {
		return
	}

	if (in.Price == "") != (in.Currency == "") {
		sl.ReportError(in.Price, "price", "Price", validation.TogetherTag, "currency")
	}
}

func (a *app) newAddCommand() *cobra.Command {
	var in addInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course to the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := in.entry()
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(store *cart.Store) error {
				result, err := store.Add(cmd.Context(), entry)
				if err != nil {
					return fmt.Errorf("store.Add: %w", err)
				}

				a.logger.Info("add", "id", entry.ID, "result", result.String())
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", entry.ID, result.Message())

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.ID, "id", "", "course ID")
	cmd.Flags().StringVar(&in.Title, "title", "", "display title")
	cmd.Flags().StringVar(&in.Image, "image", "", "image URL or path")
	cmd.Flags().StringVar(&in.Price, "price", "", "price amount, e.g. 49.90")
	cmd.Flags().StringVar(&in.Currency, "currency", "", "ISO 4217 currency of the price")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (in addInput) entry() (domain.CartEntry, error) {
	if err := validate.Struct(in); err != nil {
		return domain.CartEntry{}, validation.Error(err)
	}

	entry := domain.CartEntry{
		ID:    in.ID,
		Title: in.Title,
		Image: in.Image,
	}

	if in.Price == "" {
		return entry, nil
	}

	amount, err := decimal.NewFromString(in.Price)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("decimal.NewFromString: %w", err)
	}

	unit, err := currency.ParseISO(in.Currency)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("currency[%s] is not valid: %w", in.Currency, err)
	}

	entry.Price = domain.Money{Amount: amount, Currency: unit}

	return entry, nil
}

func (a *app) newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a course from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *cart.Store) error {
				if err := store.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("store.Remove: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: removed\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every course from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store *cart.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("store.Clear: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
				return nil
			})
		},
	}
}

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the cart contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store *cart.Store) error {
				state := store.State()

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "#\tID\tTITLE\tPRICE")
				for i, item := range state.Items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, item.ID, item.Title, formatMoney(item.Price))
				}
				if err := w.Flush(); err != nil {
					return fmt.Errorf("w.Flush: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d items\n", state.Len(), domain.MaxItems)
				for _, subtotal := range state.Subtotals() {
					fmt.Fprintf(cmd.OutOrStdout(), "subtotal %s\n", formatMoney(subtotal))
				}

				return nil
			})
		},
	}
}

func newHoursCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hours RANGE",
		Short: `Print net training hours of a time range, e.g. "09:00 - 12:00, 13:00 - 17:00"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := schedule.NetTrainingHours(args[0])
			if err != nil {
				return fmt.Errorf("schedule.NetTrainingHours: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hours.String())
			return nil
		},
	}
}

func formatMoney(m domain.Money) string {
	if m.IsZero() {
		return "-"
	}
	amount := m.Amount.String()
	if m.Amount.Exponent() >= -2 {
		amount = m.Amount.StringFixed(2)
	}

	return fmt.Sprintf("%s %s", amount, m.Currency)
}
