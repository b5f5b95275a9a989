package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/halfkg-storefront/internal/cart"
	"github.com/imrishuroy/halfkg-storefront/internal/catalog"
	"github.com/imrishuroy/halfkg-storefront/internal/checkout"
	"github.com/imrishuroy/halfkg-storefront/internal/money"
	"github.com/imrishuroy/halfkg-storefront/internal/orders"
	"github.com/imrishuroy/halfkg-storefront/internal/validation"
)

const prompt = "halfkg> "

var errQuit = errors.New("quit")

type sessionConfig struct {
	Catalog        *catalog.Catalog
	Cart           *cart.Store
	Orders         *orders.Store
	Checkout       *checkout.Service
	CurrencySymbol string
	Out            io.Writer
	Logger         *zap.Logger
}

// session is one shopper at the terminal. Every cart change goes through the
// cart store; the badge is redrawn from the snapshots it publishes.
type session struct {
	catalog  *catalog.Catalog
	cart     *cart.Store
	orders   *orders.Store
	checkout *checkout.Service
	symbol   string
	out      io.Writer
	logger   *zap.Logger
	validate *validatorv10.Validate

	unsubscribe func()
	newKey      func() string
	// checkoutKey is minted by checkout and spent by a successful confirm.
	checkoutKey string
	// placedOrderID answers a repeated confirm until the cart changes again.
	placedOrderID string
}

func newSession(cfg sessionConfig) *session {
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &session{
		catalog:  cfg.Catalog,
		cart:     cfg.Cart,
		orders:   cfg.Orders,
		checkout: cfg.Checkout,
		symbol:   symbol,
		out:      cfg.Out,
		logger:   logger.Named("repl"),
		validate: validation.New(),
		newKey:   uuid.NewString,
	}
	s.unsubscribe = s.cart.Subscribe(s.cartChanged)
	return s
}

// cartChanged redraws the badge and drops any pending checkout, so a confirm
// always places exactly the cart that was reviewed.
func (s *session) cartChanged(snap cart.Snapshot) {
	s.checkoutKey = ""
	s.placedOrderID = ""
	s.drawBadge(snap)
}

// Close detaches the session from the cart store.
func (s *session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Run reads commands from r until EOF or quit.
func (s *session) Run(ctx context.Context, r io.Reader) error {
	fmt.Fprintln(s.out, "Welcome to halfkg. Type help for commands.")
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.exec(ctx, sc.Text())
		if errors.Is(err, errQuit) {
			fmt.Fprintln(s.out, "bye")
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

func (s *session) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s.logger.Debug("command", zap.String("cmd", cmd), zap.Strings("args", args))

	switch cmd {
	case "help", "?":
		s.help()
		return nil
	case "products", "ls":
		return s.products(args)
	case "show":
		return s.show(args)
	case "add":
		return s.add(args)
	case "inc":
		return s.step(args, 1)
	case "dec":
		return s.step(args, -1)
	case "remove", "rm":
		return s.remove(args)
	case "cart":
		s.showCart()
		return nil
	case "checkout":
		return s.startCheckout()
	case "confirm":
		return s.confirm(ctx)
	case "orders":
		return s.listOrders(args)
	case "advance":
		return s.advance(args)
	case "export":
		return orders.WriteCSV(s.out, s.orders.List(orders.StatusAll))
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (s *session) help() {
	fmt.Fprint(s.out, `Commands:
  products [category] [search]  browse the catalog
  show <id>                     product details
  add <id> [qty]                add to cart
  inc <id> | dec <id>           change quantity by one
  remove <id>                   remove from cart
  cart                          show the cart
  checkout                      review the order summary
  confirm                       place the order
  orders [status]               order history
  advance <order-id>            move an order to its next status
  export                        order history as CSV
  quit
`)
}

func (s *session) price(amount int64) string {
	return money.Format(s.symbol, amount)
}

func (s *session) drawBadge(snap cart.Snapshot) {
	fmt.Fprintf(s.out, "[cart: %d %s, %s]\n", snap.TotalItems, plural(snap.TotalItems, "item", "items"), s.price(snap.TotalPrice))
}

func (s *session) products(args []string) error {
	category := catalog.CategoryAll
	if len(args) > 0 {
		for _, c := range s.catalog.Categories() {
			if strings.EqualFold(c, args[0]) {
				category = c
				args = args[1:]
				break
			}
		}
	}
	search := strings.Join(args, " ")

	fmt.Fprintf(s.out, "Categories: %s\n", strings.Join(s.catalog.Categories(), " | "))
	list := s.catalog.Filter(category, search)
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No products found")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, p := range list {
		inCart := ""
		if q := s.cart.ItemQuantity(p.ID); q > 0 {
			inCart = fmt.Sprintf("in cart: %d", q)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.WeightLabel, s.price(p.Price), inCart)
	}
	return tw.Flush()
}

func (s *session) lookup(args []string) (catalog.Product, error) {
	if len(args) == 0 {
		return catalog.Product{}, errors.New("missing product id")
	}
	id, err := parseInt(args[0])
	if err != nil {
		return catalog.Product{}, fmt.Errorf("invalid product id %q", args[0])
	}
	p, ok := s.catalog.Get(id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func (s *session) show(args []string) error {
	p, err := s.lookup(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%s)\n", p.Name, p.WeightLabel)
	fmt.Fprintf(s.out, "  %s  was %s\n", s.price(p.Price), s.price(p.OriginalPrice()))
	fmt.Fprintf(s.out, "  %s\n", p.Category)
	if p.Description != "" {
		fmt.Fprintf(s.out, "  %s\n", p.Description)
	}
	if q := s.cart.ItemQuantity(p.ID); q > 0 {
		fmt.Fprintf(s.out, "  in cart: %d\n", q)
	}
	return nil
}

func (s *session) add(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <id> [qty]")
	}
	req := validation.AddItemRequest{Quantity: 1}
	var err error
	if req.ProductID, err = parseInt(args[0]); err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	if len(args) > 1 {
		qty, err := parseInt(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		req.Quantity = int(qty)
	}
	if err := validation.Check(s.validate, req); err != nil {
		for field, msg := range validation.Fields(err) {
			fmt.Fprintf(s.out, "  %s: %s\n", field, msg)
		}
		return err
	}

	p, ok := s.catalog.Get(req.ProductID)
	if !ok {
		return fmt.Errorf("product %d not found", req.ProductID)
	}
	if err := s.cart.Add(p, req.Quantity); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %d x %s\n", req.Quantity, p.Name)
	return nil
}

func (s *session) step(args []string, delta int) error {
	p, err := s.lookup(args)
	if err != nil {
		return err
	}
	if s.cart.ItemQuantity(p.ID) == 0 {
		return fmt.Errorf("%s is not in the cart", p.Name)
	}
	s.cart.UpdateQuantity(p.ID, delta)
	return nil
}

func (s *session) remove(args []string) error {
	p, err := s.lookup(args)
	if err != nil {
		return err
	}
	if s.cart.ItemQuantity(p.ID) == 0 {
		return fmt.Errorf("%s is not in the cart", p.Name)
	}
	s.cart.Remove(p.ID)
	fmt.Fprintf(s.out, "Removed %s\n", p.Name)
	return nil
}

func (s *session) showCart() {
	snap := s.cart.Snapshot()
	if len(snap.Items) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, it := range snap.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d x %s\t%s\n",
			it.ProductID, it.Name, it.WeightLabel, it.Quantity, s.price(it.UnitPrice), s.price(it.LineTotal()))
	}
	_ = tw.Flush()
	fmt.Fprintf(s.out, "Total (%d %s): %s\n", snap.TotalItems, plural(snap.TotalItems, "item", "items"), s.price(snap.TotalPrice))
}

func (s *session) startCheckout() error {
	q := s.checkout.Quote()
	if len(q.Items) == 0 {
		return checkout.ErrEmptyCart
	}
	s.checkoutKey = s.newKey()
	s.placedOrderID = ""

	fmt.Fprintln(s.out, "Order Summary")
	for _, it := range q.Items {
		fmt.Fprintf(s.out, "  %s x%d  %s\n", it.Name, it.Quantity, s.price(it.LineTotal()))
	}
	fmt.Fprintf(s.out, "Subtotal: %s\n", s.price(q.Subtotal))
	fmt.Fprintf(s.out, "Delivery Fee: %s\n", s.price(q.DeliveryFee))
	fmt.Fprintf(s.out, "Total: %s\n", s.price(q.Total))
	fmt.Fprintf(s.out, "Estimated Delivery: %d-%d days\n", checkout.MinDeliveryDays, checkout.MaxDeliveryDays)
	fmt.Fprintln(s.out, "Type confirm to place the order")
	return nil
}

func (s *session) confirm(ctx context.Context) error {
	if s.checkoutKey == "" {
		if s.placedOrderID != "" {
			fmt.Fprintf(s.out, "Order %s already placed\n", s.placedOrderID)
			return nil
		}
		return errors.New("nothing to confirm, run checkout first")
	}
	o, err := s.checkout.PlaceOrder(ctx, s.checkoutKey)
	if err != nil {
		return err
	}
	s.checkoutKey = ""
	s.placedOrderID = o.OrderID
	earliest, latest := checkout.EstimatedDelivery(o.PlacedAt)
	fmt.Fprintf(s.out, "Order %s placed: %s, %s\n", o.OrderID, o.Status, s.price(o.Total))
	fmt.Fprintf(s.out, "Arrives between %s and %s\n", earliest.Format("Jan 2"), latest.Format("Jan 2"))
	return nil
}

func (s *session) listOrders(args []string) error {
	status := orders.StatusAll
	if len(args) > 0 {
		want := strings.Join(args, " ")
		status = ""
		for _, st := range orders.Statuses() {
			if strings.EqualFold(st, want) {
				status = st
				break
			}
		}
		if status == "" {
			return fmt.Errorf("unknown status %q (one of %s)", want, strings.Join(orders.Statuses(), ", "))
		}
	}

	list := s.orders.List(status)
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No orders found")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, o := range list {
		n := o.ItemCount()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\t%s\n",
			o.OrderID, o.PlacedAt.Format(time.DateOnly), o.Status, n, plural(n, "item", "items"), s.price(o.Total))
	}
	return tw.Flush()
}

func (s *session) advance(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: advance <order-id>")
	}
	st, err := s.orders.Advance(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Order %s is now %s\n", args[0], st)
	return nil
}

// parseInt reads a base-10 integer argument.
func parseInt(arg string) (int64, error) {
	return strconv.ParseInt(arg, 10, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
