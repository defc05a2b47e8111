package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/domain/cart"
)

var (
	cartSession string
	cartUser    string
)

// cartCmd inspects and edits stored carts
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit stored carts",
	Long: `Operator tooling for carts in the configured CART_STORE.

Select the cart with --session for a guest cart or --user for a member cart.

Available subcommands:
  show   - Print the cart and its totals
  add    - Add a product, looked up on the backend
  update - Set the quantity of a line (0 removes it)
  remove - Remove a line
  clear  - Empty the cart`,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart and its totals",
	Args:  cobra.NoArgs,
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id> [quantity]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <quantity>",
	Short: "Set the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartClear,
}

func init() {
	cartCmd.PersistentFlags().StringVar(&cartSession, "session", "", "guest session ID")
	cartCmd.PersistentFlags().StringVar(&cartUser, "user", "", "member user ID")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)
}

// productLookup fetches catalog products for cart add
var productLookup = func() interface {
	GetProduct(ctx context.Context, id string) (*client.Product, error)
} {
	return client.New(cfg.Backend, logger)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	return withCart(cmd, func(ctx context.Context, svc *cart.Service, owner cart.Owner, n cart.Notifier) (cart.State, error) {
		return svc.GetCart(ctx, owner)
	})
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil || q < 1 {
			return fmt.Errorf("quantity must be a positive integer, got %q", args[1])
		}
		quantity = q
	}

	return withCart(cmd, func(ctx context.Context, svc *cart.Service, owner cart.Owner, n cart.Notifier) (cart.State, error) {
		product, err := productLookup().GetProduct(ctx, args[0])
		if err != nil {
			return cart.State{}, err
		}
		if !product.Available() {
			return cart.State{}, fmt.Errorf("product %s is out of stock", product.ID)
		}

		return svc.AddItemWithinStock(ctx, owner, cart.Product{
			ProductID:     product.ID,
			Name:          product.Name,
			Image:         product.PrimaryImage(),
			Price:         product.Price,
			DiscountPrice: product.DiscountPrice,
			PV:            product.PV,
			InStock:       true,
		}, quantity, product.Stock, n)
	})
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity must be an integer, got %q", args[1])
	}

	return withCart(cmd, func(ctx context.Context, svc *cart.Service, owner cart.Owner, n cart.Notifier) (cart.State, error) {
		return svc.UpdateQuantity(ctx, owner, args[0], quantity, n)
	})
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	return withCart(cmd, func(ctx context.Context, svc *cart.Service, owner cart.Owner, n cart.Notifier) (cart.State, error) {
		return svc.RemoveItem(ctx, owner, args[0], n)
	})
}

func runCartClear(cmd *cobra.Command, args []string) error {
	return withCart(cmd, func(ctx context.Context, svc *cart.Service, owner cart.Owner, n cart.Notifier) (cart.State, error) {
		return svc.ClearCart(ctx, owner, n)
	})
}

type cartFunc func(ctx context.Context, svc *cart.Service, owner cart.Owner, n cart.Notifier) (cart.State, error)

// withCart opens the cart store, runs fn against the selected cart and
// prints the resulting state. Notifications go to stderr.
func withCart(cmd *cobra.Command, fn cartFunc) error {
	owner := cart.Owner{UserID: cartUser, SessionID: cartSession}
	if owner.UserID == "" && owner.SessionID == "" {
		return fmt.Errorf("one of --session or --user is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	svc := cart.NewService(b.snapshots, cfg, logger)
	stderr := cmd.ErrOrStderr()
	notifier := cart.NotifierFunc(func(n cart.Notification) {
		fmt.Fprintf(stderr, "%s: %s\n", n.Kind, n.Message)
	})

	state, err := fn(ctx, svc, owner, notifier)
	if err != nil {
		return err
	}

	return printState(cmd.OutOrStdout(), state)
}

func printState(w io.Writer, state cart.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
