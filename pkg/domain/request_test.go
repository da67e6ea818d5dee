package domain_test

import (
	"testing"

	"github.com/evmtools/t8nkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveReward_Genesis(t *testing.T) {
	cases := []struct {
		name      string
		number    string
		requested int64
		want      int64
	}{
		{"decimal zero", "0", 2000000000000000000, domain.GenesisReward},
		{"hex zero", "0x0", 0, domain.GenesisReward},
		{"padded hex zero", "0x00", 5, domain.GenesisReward},
		{"decimal one", "1", 2000000000000000000, 2000000000000000000},
		{"hex one", "0x1", 0, 0},
		{"large hex", "0x1000000", 42, 42},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := domain.Env{"currentNumber": tc.number}
			got, err := domain.EffectiveReward(tc.requested, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEffectiveReward_BadEnvironment(t *testing.T) {
	t.Run("missing currentNumber", func(t *testing.T) {
		_, err := domain.EffectiveReward(0, domain.Env{"currentTimestamp": "0"})
		assert.ErrorContains(t, err, "currentNumber")
	})

	t.Run("non-string currentNumber", func(t *testing.T) {
		_, err := domain.EffectiveReward(0, domain.Env{"currentNumber": 7})
		assert.ErrorContains(t, err, "must be a string")
	})

	t.Run("unparseable currentNumber", func(t *testing.T) {
		_, err := domain.EffectiveReward(0, domain.Env{"currentNumber": "zero"})
		assert.ErrorContains(t, err, "cannot parse")
	})

	t.Run("empty currentNumber", func(t *testing.T) {
		// The empty string would otherwise parse as zero and force the
		// genesis sentinel.
		_, err := domain.EffectiveReward(0, domain.Env{"currentNumber": ""})
		assert.ErrorContains(t, err, "must not be empty")
	})
}

func TestRequestValidate(t *testing.T) {
	valid := domain.Request{
		Fork: "Berlin",
		Env:  domain.Env{"currentNumber": "1"},
	}
	require.NoError(t, valid.Validate())

	noFork := valid
	noFork.Fork = ""
	assert.ErrorContains(t, noFork.Validate(), "fork name")

	noEnv := valid
	noEnv.Env = nil
	assert.ErrorContains(t, noEnv.Validate(), "environment")

	noNumber := valid
	noNumber.Env = domain.Env{"currentGasLimit": "100000"}
	assert.ErrorContains(t, noNumber.Validate(), "currentNumber")
}

func TestRequestEffectiveChainID(t *testing.T) {
	req := domain.Request{}
	assert.Equal(t, int64(1), req.EffectiveChainID(), "unset chain id defaults to mainnet")

	req.ChainID = 5
	assert.Equal(t, int64(5), req.EffectiveChainID())
}
