package cli

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakewell-labs/staking-vault/internal/config"
	"github.com/stakewell-labs/staking-vault/internal/db"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

func DumpStakesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-stakes",
		Short: "Prints every open stake document for operational inspection",
		Run:   dumpStakes,
	}

	return cmd
}

func dumpStakes(cmd *cobra.Command, args []string) {
	err := dumpStakesE(cmd, args)
	// because of current architecture we need to stop execution of the program
	// otherwise existing main logic will be called
	if err != nil {
		log.Err(err).Msg("Failed to dump stakes")
		os.Exit(1)
	}

	os.Exit(0)
}

func dumpStakesE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}

	stakes, err := dbClient.GetStakesByStates(ctx, types.OpenStates())
	if err != nil {
		return err
	}

	fmt.Printf("Open stakes: %d\n", len(stakes))
	for _, stakeDoc := range stakes {
		spew.Dump(stakeDoc)
	}

	return nil
}
