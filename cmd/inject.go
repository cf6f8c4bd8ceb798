package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cloudkitchen/dispatch/core/events"
	"github.com/cloudkitchen/dispatch/core/kitchen"
	"github.com/cloudkitchen/dispatch/core/model"
	"github.com/cloudkitchen/dispatch/infra/logger"
	"github.com/cloudkitchen/dispatch/internal/eventbus"
)

var injectPrepSeconds float64

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Inject a test order and courier and report the wait times",
	RunE:  injectOrder,
}

func init() {
	injectCmd.Flags().Float64Var(&injectPrepSeconds, "prep", 1, "preparation time in seconds")
	rootCmd.AddCommand(injectCmd)
}

func injectOrder(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg := logger.New("inject-command")
	bus := eventbus.New[any](8)
	med, err := kitchen.NewMediator(kitchen.FIFOPolicy{}, logg, nil, bus)
	if err != nil {
		return fmt.Errorf("mediator: %w", err)
	}
	defer func() {
		if err := med.Close(); err != nil {
			logg.Errorf("mediator close: %v", err)
		}
	}()
	sub := bus.Subscribe()

	prep := time.Duration(injectPrepSeconds * float64(time.Second))
	order := model.Order{ID: uuid.NewString(), Name: "Test Order", PrepTime: prep}
	if err := med.AddOrder(order); err != nil {
		return fmt.Errorf("add order: %w", err)
	}
	if err := med.AddCourier(model.Courier{ID: "cour-" + uuid.NewString()[:8]}); err != nil {
		return fmt.Errorf("add courier: %w", err)
	}

	timeout := time.After(prep + 5*time.Second)
	for {
		select {
		case e := <-sub:
			if de, ok := e.(events.DispatchEvent); ok && de.OrderID == order.ID {
				med.LogAverages()
				return nil
			}
		case <-timeout:
			return fmt.Errorf("timed out waiting for dispatch")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
