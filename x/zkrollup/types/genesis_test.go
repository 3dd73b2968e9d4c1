package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

func validGenesisZkapp(program byte) types.GenesisZkapp {
	var hash types.ProgramHash
	hash[0] = program
	return types.GenesisZkapp{
		ProgramHash: hash,
		Zkapp: types.Zkapp{
			VerifierKind:    types.VerifierKindFake,
			Owner:           testAddr(),
			Submitter:       testAddr(),
			SupportedAssets: []types.Asset{types.CurrencyAsset()},
		},
	}
}

func TestGenesisValidate(t *testing.T) {
	user := testAddr()

	tests := []struct {
		name    string
		mutate  func(*types.GenesisState)
		wantErr string
	}{
		{
			name:   "default",
			mutate: func(*types.GenesisState) {},
		},
		{
			name: "valid populated",
			mutate: func(gs *types.GenesisState) {
				app := validGenesisZkapp(1)
				gs.Zkapps = []types.GenesisZkapp{app}
				gs.Accounts = []types.GenesisAccount{{
					ProgramHash: app.ProgramHash,
					Account:     types.Account{User: user, Assets: []types.AssetValue{types.CurrencyValue(5)}},
				}}
				gs.Exits = []types.GenesisExit{{ProgramHash: app.ProgramHash, User: user}}
			},
		},
		{
			name: "invalid params",
			mutate: func(gs *types.GenesisState) {
				gs.Params.AssetsLimit = 0
			},
			wantErr: "invalid params",
		},
		{
			name: "duplicate program hash",
			mutate: func(gs *types.GenesisState) {
				gs.Zkapps = []types.GenesisZkapp{validGenesisZkapp(1), validGenesisZkapp(1)}
			},
			wantErr: "duplicate program hash",
		},
		{
			name: "account for unknown app",
			mutate: func(gs *types.GenesisState) {
				var hash types.ProgramHash
				hash[0] = 9
				gs.Accounts = []types.GenesisAccount{{
					ProgramHash: hash,
					Account:     types.Account{User: user},
				}}
			},
			wantErr: "unknown program hash",
		},
		{
			name: "exit for unknown app",
			mutate: func(gs *types.GenesisState) {
				var hash types.ProgramHash
				hash[0] = 9
				gs.Exits = []types.GenesisExit{{ProgramHash: hash, User: user}}
			},
			wantErr: "unknown program hash",
		},
		{
			name: "bad verifying key hex",
			mutate: func(gs *types.GenesisState) {
				app := validGenesisZkapp(1)
				app.VerifyingKey = "not-hex"
				gs.Zkapps = []types.GenesisZkapp{app}
			},
			wantErr: "invalid verifying key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := types.DefaultGenesis()
			tt.mutate(gs)
			err := gs.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	params := types.DefaultParams()
	require.NoError(t, params.Validate())

	params.NativeDenom = ""
	require.Error(t, params.Validate())

	params = types.DefaultParams()
	params.L1OperationLimit = 0
	require.Error(t, params.Validate())
}
