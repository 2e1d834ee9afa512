package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/partner-desk/internal/fixtures"
	"github.com/spec-kit/partner-desk/internal/store"
)

type rootOptions struct {
	fixtures string
	now      func() time.Time
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	root := &cobra.Command{
		Use:           "partnerctl",
		Short:         "Inspect a partner book of business",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.fixtures, "fixtures", "fixtures/demo.yaml", "YAML fixture to load")

	root.AddCommand(
		newDashboardCmd(opts),
		newPartnersCmd(opts),
		newPartnerCmd(opts),
		newInteractionsCmd(opts),
		newThreadsCmd(opts),
	)
	return root
}

// load seeds a fresh store from the fixture flag.
func (o *rootOptions) load() (*store.Store, time.Time, error) {
	now := o.now()
	snap, err := fixtures.Load(o.fixtures, now)
	if err != nil {
		return nil, now, err
	}
	st := store.New(store.WithClock(o.now))
	st.Seed(snap)
	return st, now, nil
}
