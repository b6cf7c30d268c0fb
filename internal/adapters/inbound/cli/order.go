package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/notify"
	"github.com/ordercraft/ordercraft/internal/adapters/outbound/tui"
	"github.com/ordercraft/ordercraft/internal/application"
	"github.com/ordercraft/ordercraft/internal/domain"
)

const orderHelp = `Commands:
  customers [query]      list customers, optionally filtered
  select <id>            choose the customer
  next                   continue to products and review
  back                   return to customer selection
  products [query]       list products, optionally filtered
  add <id> [qty]         add a product (default 1)
  qty <id> <n>           set a line's quantity (0 removes)
  rm <id>                remove a line
  set <field> <value>    paymentMethod, paymentStatus, shippingCost, discount, notes
  show                   print the draft
  reload                 fetch customers and products again
  submit                 create the order
  cancel                 discard the draft and quit
`

func newOrderCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Order commands",
	}
	cmd.AddCommand(newOrderCreateCmd(flags))
	return cmd
}

func newOrderCreateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Compose and submit an order interactively",
		Long:  "Open the order wizard. Commands are read one per line from stdin; type help for the list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			out := cmd.OutOrStdout()
			deps := e.deps
			deps.Notifier = notify.Multi{notify.NewWriter(out), notify.NewLog(e.logger)}

			w := application.NewWizard(deps, e.wizardOptions()...)
			w.Open(cmd.Context())

			r := &repl{w: w, out: out, currency: e.cfg.Currency}
			return r.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

// repl drives one wizard from line-oriented input.
type repl struct {
	w        *application.Wizard
	out      io.Writer
	currency string
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(r.out, tui.RenderCustomers(r.w.Customers(), ""))
	fmt.Fprintln(r.out, "Type help for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(r.out, "%s> ", r.w.Step())
		if !scanner.Scan() {
			break
		}
		done, err := r.exec(ctx, scanner.Text())
		if err != nil {
			var subErr *domain.SubmissionError
			if !errors.As(err, &subErr) {
				fmt.Fprint(r.out, tui.RenderNotice(domain.NoticeError, err.Error()))
			}
		}
		if done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		r.w.Cancel()
		return fmt.Errorf("reading input: %w", err)
	}

	r.w.Cancel()
	fmt.Fprintln(r.out, "\nOrder discarded.")
	return nil
}

// exec runs one command line. done reports that the wizard has closed.
func (r *repl) exec(ctx context.Context, line string) (done bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "help", "?":
		fmt.Fprint(r.out, orderHelp)

	case "customers", "c":
		customers, err := r.w.SearchCustomers(strings.Join(args, " "))
		if err != nil {
			return false, err
		}
		snap, err := r.w.Snapshot()
		if err != nil {
			return false, err
		}
		selected := ""
		if snap.Customer != nil {
			selected = snap.Customer.ID
		}
		fmt.Fprint(r.out, tui.RenderCustomers(customers, selected))

	case "select":
		if len(args) != 1 {
			return false, errors.New("usage: select <customer-id>")
		}
		if err := r.w.SelectCustomer(args[0]); err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "Customer %s selected.\n", args[0])

	case "next":
		moved, err := r.w.Next()
		if err != nil {
			return false, err
		}
		if !moved {
			return false, errors.New("select a customer before continuing")
		}
		fmt.Fprint(r.out, tui.RenderProducts(r.w.Products(), r.currency))

	case "back":
		return false, r.w.Back()

	case "products", "p":
		products, err := r.w.SearchProducts(strings.Join(args, " "))
		if err != nil {
			return false, err
		}
		fmt.Fprint(r.out, tui.RenderProducts(products, r.currency))

	case "add":
		if len(args) < 1 || len(args) > 2 {
			return false, errors.New("usage: add <product-id> [qty]")
		}
		qty := 1
		if len(args) == 2 {
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return false, fmt.Errorf("invalid quantity %q", args[1])
			}
		}
		if err := r.w.AddProductQuantity(args[0], qty); err != nil {
			return false, err
		}
		return false, r.show()

	case "qty":
		if len(args) != 2 {
			return false, errors.New("usage: qty <product-id> <n>")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid quantity %q", args[1])
		}
		if err := r.w.SetQuantity(args[0], qty); err != nil {
			return false, err
		}
		return false, r.show()

	case "rm", "remove":
		if len(args) != 1 {
			return false, errors.New("usage: rm <product-id>")
		}
		if err := r.w.RemoveProduct(args[0]); err != nil {
			return false, err
		}
		return false, r.show()

	case "set":
		if len(args) < 1 {
			return false, errors.New("usage: set <field> <value>")
		}
		if err := r.w.SetAdjustment(args[0], strings.Join(args[1:], " ")); err != nil {
			return false, err
		}
		return false, r.show()

	case "show", "review":
		return false, r.show()

	case "reload":
		return false, r.w.Reload(ctx)

	case "submit":
		conf, err := r.w.Submit(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprint(r.out, tui.RenderConfirmation(conf, r.currency))
		return true, nil

	case "cancel", "quit", "exit":
		r.w.Cancel()
		fmt.Fprintln(r.out, "Order discarded.")
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q (type help)", name)
	}
	return false, nil
}

func (r *repl) show() error {
	snap, err := r.w.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprint(r.out, tui.RenderReview(snap, r.currency))
	return nil
}
