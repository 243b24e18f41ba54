package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mtdstore-client/internal/models"
	"mtdstore-client/internal/services"
)

// Shell is the interactive command loop. It reads one command per line,
// translates it into an Action and hands it to the controller. Parsing
// is context-sensitive: "cancel" means something on the payment view
// and nothing elsewhere.
type Shell struct {
	ctrl *Controller
	in   io.Reader
	out  io.Writer
}

func NewShell(ctrl *Controller, in io.Reader, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, in: in, out: out}
}

// Run blocks until the input stream ends, the user quits, or ctx is
// cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.ctrl.Show(ctx, ViewLogin)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		action, err := s.parse(line)
		if err != nil {
			fmt.Fprintf(s.out, "[error] %s\n", err)
			continue
		}
		if action == nil {
			s.printHelp()
			continue
		}
		if err := s.ctrl.Dispatch(ctx, action); err != nil {
			fmt.Fprintf(s.out, "[error] %s\n", err)
		}
	}
}

// parse maps a command line to an Action. A nil action with nil error
// means the command was not recognized.
func (s *Shell) parse(line string) (Action, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "login":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: login <username> <password>")
		}
		return LoginAction{Username: args[0], Password: args[1]}, nil
	case "logout":
		return LogoutAction{}, nil
	case "refresh":
		return RefreshAction{}, nil
	case "back":
		return BackAction{}, nil
	case "buy":
		id, err := atoiArg(args, "buy <product-id>")
		if err != nil {
			return nil, err
		}
		return SelectProductAction{ProductID: id}, nil
	case "+":
		return IncreaseQuantityAction{}, nil
	case "-":
		return DecreaseQuantityAction{}, nil
	case "qty":
		n, err := atoiArg(args, "qty <kg>")
		if err != nil {
			return nil, err
		}
		return SetQuantityAction{Quantity: n}, nil
	case "place":
		return PlaceOrderAction{}, nil
	case "pay":
		return ConfirmPaymentAction{}, nil
	case "cancel":
		return CancelPaymentAction{}, nil
	case "orders":
		return ShowOrderHistoryAction{}, nil
	case "products":
		return ShowSellerTabAction{Tab: TabMyProducts}, nil
	case "sales":
		return ShowSellerTabAction{Tab: TabSalesAnalytics}, nil
	case "upi":
		return ShowUPISettingsAction{}, nil
	case "set":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: set <yourname@upi>")
		}
		return SaveUPIAction{UPIID: args[0]}, nil
	case "add":
		form, err := parseProductForm(args)
		if err != nil {
			return nil, err
		}
		return AddProductAction{Form: form}, nil
	case "edit":
		if len(args) < 1 {
			return nil, fmt.Errorf("usage: edit <id> <name> <price> <qty> [description]")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("product id must be a number")
		}
		form, err := parseProductForm(args[1:])
		if err != nil {
			return nil, err
		}
		return EditProductAction{ProductID: id, Form: form}, nil
	case "delete":
		id, err := atoiArg(args, "delete <product-id>")
		if err != nil {
			return nil, err
		}
		return DeleteProductAction{ProductID: id}, nil
	case "adduser":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: adduser <username> <password> <buyer|seller|admin>")
		}
		return AddUserAction{Username: args[0], Password: args[1], Role: models.Role(args[2])}, nil
	case "rmuser":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: rmuser <username>")
		}
		return RemoveUserAction{Username: args[0]}, nil
	}
	return nil, nil
}

// parseProductForm reads "<name> <price> <qty> [description...]".
// Multi-word names are not supported on the command line; the API
// accepts whatever name the form carries.
func parseProductForm(args []string) (services.ProductForm, error) {
	if len(args) < 3 {
		return services.ProductForm{}, fmt.Errorf("usage: <name> <price> <qty> [description]")
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return services.ProductForm{}, fmt.Errorf("price must be a number")
	}
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return services.ProductForm{}, fmt.Errorf("quantity must be a number")
	}
	return services.ProductForm{
		Name:        args[0],
		Description: strings.Join(args[3:], " "),
		Price:       price,
		Quantity:    qty,
	}, nil
}

func atoiArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", args[0])
	}
	return n, nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Commands depend on the current view:")
	fmt.Fprintln(s.out, "  login <u> <p> | logout | refresh | back | exit")
	fmt.Fprintln(s.out, "  buyer:  buy <id> | + | - | qty <n> | place | pay | cancel | orders")
	fmt.Fprintln(s.out, "  seller: products | sales | upi | set <id@upi> | add <name> <price> <qty> [desc] | edit <id> ... | delete <id>")
	fmt.Fprintln(s.out, "  admin:  adduser <u> <p> <role> | rmuser <u>")
}
