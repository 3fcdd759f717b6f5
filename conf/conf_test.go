package conf

import (
	"strconv"
	"testing"

	"github.com/squareup/colstore/errors"
	"github.com/stretchr/testify/require"
)

type configPair struct {
	errMsg string
	conf   Config
}

func invalidInitialCapacityConf() Config {
	cnf := confAllFields
	cnf.InitialCapacity = 0
	return cnf
}

func invalidGrowthFactorConf() Config {
	cnf := confAllFields
	cnf.GrowthFactor = 1
	return cnf
}

func maxCapacityBelowInitialConf() Config {
	cnf := confAllFields
	cnf.MaxCapacity = cnf.InitialCapacity - 1
	return cnf
}

func invalidTextCollationConf() Config {
	cnf := confAllFields
	cnf.TextCollation = "not a tag"
	return cnf
}

func missingMetricsListenAddrConf() Config {
	cnf := confAllFields
	cnf.MetricsHTTPListenAddr = ""
	return cnf
}

var invalidConfigs = []configPair{
	{"CS0001 - Invalid configuration: InitialCapacity must be >= 1", invalidInitialCapacityConf()},
	{"CS0001 - Invalid configuration: GrowthFactor must be > 1", invalidGrowthFactorConf()},
	{"CS0001 - Invalid configuration: MaxCapacity must be >= InitialCapacity", maxCapacityBelowInitialConf()},
	{"CS0001 - Invalid configuration: TextCollation \"not a tag\" is not a valid language tag", invalidTextCollationConf()},
	{"CS0001 - Invalid configuration: MetricsHTTPListenAddr must be specified", missingMetricsListenAddrConf()},
}

func TestValidate(t *testing.T) {
	for _, cp := range invalidConfigs {
		err := cp.conf.Validate()
		require.Error(t, err)
		se, ok := err.(errors.StoreError)
		require.True(t, ok)
		require.Equal(t, errors.InvalidConfiguration, int(se.Code))
		require.Equal(t, cp.errMsg, se.Msg)
	}
}

func TestMaxCapacityBeyondBitmapRange(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("an int cannot hold a capacity beyond the bitmap range")
	}
	limit := MaxRecords
	cnf := confAllFields
	cnf.MaxCapacity = int(limit)
	require.NoError(t, cnf.Validate())
	cnf.MaxCapacity = int(limit + 1)
	err := cnf.Validate()
	require.True(t, errors.HasCode(err, errors.InvalidConfiguration))
	require.Equal(t, "CS0001 - Invalid configuration: MaxCapacity must be <= 4294967295", err.Error())
}

func TestValidConfigs(t *testing.T) {
	require.NoError(t, confAllFields.Validate())
	require.NoError(t, NewDefaultConfig().Validate())
	require.NoError(t, NewTestConfig().Validate())
}

var confAllFields = Config{
	InitialCapacity:       8,
	GrowthFactor:          1.5,
	MaxCapacity:           4096,
	TextCollation:         "en-GB",
	MetricsEnabled:        true,
	MetricsHTTPListenAddr: "localhost:9102",
}
