package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/engine"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/sigcheck"
)

// demoCmd runs a complete custody round trip against an in-memory
// store: three owners, a deposit, a submission and a quorum execution.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "run a three-owner custody round trip in memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			lg := logger()

			keys := []*crypto.PrivateKey{
				crypto.GenPrivKeyEd25519(),
				crypto.GenPrivKeyEd25519(),
				crypto.GenPrivKeyEd25519(),
			}
			addrs := make([]custody.Address, len(keys))
			for i, k := range keys {
				addrs[i] = k.PublicKey().Address()
			}

			eng := engine.NewEngine(store.MemStore(), nopReleaser{}, engine.Options{
				Logger: lg,
				Sink: func(ev custody.Event) {
					lg.Info("event", "type", ev.Type)
				},
			})
			err := eng.Initialize(engine.GenesisOptions{
				Deployer:   addrs[0],
				MaxOwners:  10,
				Required:   3,
				Owners:     addrs[1:],
				DailyLimit: 1000000,
			})
			if err != nil {
				return err
			}

			if err := eng.DepositValue(addrs[0], 5000); err != nil {
				return err
			}

			expiry := custody.AsUnixTime(time.Now().Add(time.Hour))
			dest := custody.NewCondition("demo", "account", []byte("beneficiary")).Address()
			id, err := eng.SubmitTransaction(addrs[0], dest, 1200, nil, expiry)
			if err != nil {
				return err
			}

			nonce, err := eng.Nonce()
			if err != nil {
				return err
			}
			sigs := make([]*sigcheck.StdSignature, len(keys))
			for i, k := range keys {
				if sigs[i], err = sigcheck.Sign(k, dest, 1200, nil, nonce); err != nil {
					return err
				}
			}
			if err := eng.ExecuteTransaction(addrs[0], id, sigs); err != nil {
				return err
			}

			balance, err := eng.Balance()
			if err != nil {
				return err
			}
			cmd.Printf("transaction %d executed, pool balance %d\n", id, balance)
			return nil
		},
	}
}
