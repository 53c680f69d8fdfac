// Command holdingsd runs the holdings engine. The demo command executes a
// scripted scenario against an in-memory store, which is handy to inspect
// the transaction flow and the log output.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/amount"
	"github.com/holdings-one/holdings/app"
	"github.com/holdings-one/holdings/store"
	"github.com/holdings-one/holdings/x"
	"github.com/holdings-one/holdings/x/account"
	"github.com/holdings-one/holdings/x/asset"
	"github.com/holdings-one/holdings/x/preapproval"
	"github.com/holdings-one/holdings/x/trade"
	"github.com/holdings-one/holdings/x/transfer"
	"github.com/holdings-one/holdings/x/utils"
)

func main() {
	root := &cobra.Command{
		Use:           "holdingsd",
		Short:         "multi-party holdings engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(demoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "run a scripted transfer and trade scenario in memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			return runDemo(logger)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// signerAuth reads the authorized conditions from the context, set per
// transaction by the demo driver.
type signerAuth struct{}

type signerKey struct{}

var _ x.Authenticator = signerAuth{}

func withSigners(ctx holdings.Context, signers ...holdings.Condition) holdings.Context {
	return context.WithValue(ctx, signerKey{}, signers)
}

func (signerAuth) GetConditions(ctx holdings.Context) []holdings.Condition {
	signers, _ := ctx.Value(signerKey{}).([]holdings.Condition)
	return signers
}

func (a signerAuth) HasAddress(ctx holdings.Context, addr holdings.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// demoTx is the transaction shape used by the scripted scenario.
type demoTx struct {
	msg holdings.Msg
}

var _ holdings.Tx = (*demoTx)(nil)

func (tx *demoTx) GetMsg() (holdings.Msg, error) { return tx.msg, nil }
func (tx *demoTx) Marshal() ([]byte, error)      { return tx.msg.Marshal() }
func (tx *demoTx) Unmarshal([]byte) error {
	return fmt.Errorf("demo transactions are never deserialized")
}

func newCondition() holdings.Condition {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return holdings.NewCondition("sigs", "ed25519", data)
}

func runDemo(logger zerolog.Logger) error {
	db := store.MemStore()
	ledger := asset.NewLedger()
	accounts := account.NewController(ledger)
	approvals := preapproval.NewController(accounts)

	auth := signerAuth{}
	router := app.NewRouter()
	account.RegisterRoutes(router, auth, accounts)
	transfer.RegisterRoutes(router, auth, accounts, approvals)
	preapproval.RegisterRoutes(router, auth, approvals)
	trade.RegisterRoutes(router, auth, accounts, approvals)

	stack := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)
	engine := app.NewApplication(db, stack)

	goldIssuer := newCondition()
	silverIssuer := newCondition()
	alice := newCondition()
	bob := newCondition()
	carol := newCondition()
	gold := asset.Type{Issuer: goldIssuer.Address(), Symbol: "GLD", Fungible: true}
	silver := asset.Type{Issuer: silverIssuer.Address(), Symbol: "SLV", Fungible: true}

	opts, err := genesis(gold, silver, alice.Address(), bob.Address())
	if err != nil {
		return err
	}
	if err := engine.InitChain(opts, account.Initializer{}); err != nil {
		return err
	}
	logger.Info().Msg("genesis loaded: alice holds 100 GLD, bob holds 100 SLV")

	ctx := holdings.WithLogger(context.Background(), logger)
	deliver := func(signer holdings.Condition, msg holdings.Msg) (*holdings.DeliverResult, error) {
		return engine.Deliver(withSigners(ctx, signer), &demoTx{msg: msg})
	}

	// carol joins: invited by the issuer, accepts, receives an airdrop and
	// cuts it into spendable denominations
	res, err := deliver(goldIssuer, &account.InviteMsg{
		Type:         gold,
		Recipient:    carol.Address(),
		Airdroppable: true,
	})
	if err != nil {
		return err
	}
	if _, err := deliver(carol, &account.AcceptInviteMsg{InvitationID: res.Data}); err != nil {
		return err
	}
	res, err = deliver(goldIssuer, &account.AirdropMsg{
		Type:   gold,
		Owner:  carol.Address(),
		Amount: amount.New(50, 0),
	})
	if err != nil {
		return err
	}
	if _, err := deliver(carol, &account.MergeSplitMsg{
		Type:     gold,
		Owner:    carol.Address(),
		InputIDs: [][]byte{res.Data},
		Outputs:  []amount.Amount{amount.New(20, 0), amount.New(25, 0)},
	}); err != nil {
		return err
	}
	logger.Info().Msg("carol onboarded: 50 GLD airdrop split into 20, 25 and 5")

	// alice sends 30 gold to bob
	aliceGold, err := ledger.HoldingsOf(db, gold, alice.Address())
	if err != nil {
		return err
	}
	res, err = deliver(alice, &transfer.CreateTransfersMsg{
		Type:     gold,
		Sender:   alice.Address(),
		InputIDs: aliceGold,
		Destinations: []transfer.Destination{
			{Amount: amount.New(30, 0), Recipient: bob.Address()},
		},
	})
	if err != nil {
		return err
	}
	if _, err := deliver(bob, &transfer.DepositMsg{OfferID: res.Data}); err != nil {
		return err
	}
	logger.Info().Msg("transfer complete: 30 GLD moved to bob")

	// alice trades 20 gold for 20 of bob's silver
	aliceGold, err = ledger.HoldingsOf(db, gold, alice.Address())
	if err != nil {
		return err
	}
	res, err = deliver(alice, &trade.CreateTradeMsg{
		Proposer: alice.Address(),
		Receiver: bob.Address(),
		Offered:  trade.Leg{Type: gold, Amount: amount.New(20, 0)},
		Wanted:   trade.Leg{Type: silver, Amount: amount.New(20, 0)},
		InputIDs: aliceGold,
	})
	if err != nil {
		return err
	}
	bobSilver, err := ledger.HoldingsOf(db, silver, bob.Address())
	if err != nil {
		return err
	}
	if _, err := deliver(bob, &trade.SettleMsg{TradeID: res.Data, InputIDs: bobSilver}); err != nil {
		return err
	}
	logger.Info().Msg("trade settled: 20 GLD for 20 SLV")

	for _, party := range []struct {
		name string
		addr holdings.Address
	}{
		{"alice", alice.Address()},
		{"bob", bob.Address()},
		{"carol", carol.Address()},
	} {
		for _, typ := range []asset.Type{gold, silver} {
			total, err := totalOf(db, ledger, typ, party.addr)
			if err != nil {
				return err
			}
			logger.Info().
				Str("party", party.name).
				Str("symbol", typ.Symbol).
				Str("total", total.String()).
				Msg("final holdings")
		}
	}
	return nil
}

// genesis builds the options for two parties fully set up to trade with each
// other: both hold accounts of both types, funded on one side each.
func genesis(gold, silver asset.Type, alice, bob holdings.Address) (holdings.Options, error) {
	type acct struct {
		Type  asset.Type       `json:"type"`
		Owner holdings.Address `json:"owner"`
	}
	type holding struct {
		Type   asset.Type       `json:"type"`
		Owner  holdings.Address `json:"owner"`
		Amount amount.Amount    `json:"amount"`
	}

	accounts, err := json.Marshal([]acct{
		{Type: gold, Owner: alice},
		{Type: silver, Owner: alice},
		{Type: gold, Owner: bob},
		{Type: silver, Owner: bob},
	})
	if err != nil {
		return nil, err
	}
	funds, err := json.Marshal([]holding{
		{Type: gold, Owner: alice, Amount: amount.New(100, 0)},
		{Type: silver, Owner: bob, Amount: amount.New(100, 0)},
	})
	if err != nil {
		return nil, err
	}
	return holdings.Options{
		"accounts": accounts,
		"holdings": funds,
	}, nil
}

func totalOf(db holdings.ReadOnlyKVStore, ledger asset.Ledger, typ asset.Type, owner holdings.Address) (amount.Amount, error) {
	var total amount.Amount
	ids, err := ledger.HoldingsOf(db, typ, owner)
	if err != nil {
		return total, err
	}
	for _, id := range ids {
		rec, err := ledger.Get(db, id)
		if err != nil {
			return total, err
		}
		var sumErr error
		total, sumErr = total.Add(rec.Amount)
		if sumErr != nil {
			return total, sumErr
		}
	}
	return total, nil
}
