package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsAndPaths(t *testing.T) {
	cases := []struct {
		env   Env
		label string
		path  string
		test  bool
	}{
		{Prod, "Master", "prod", false},
		{Test1, "Test1", "test1", true},
		{Test3, "Test3", "test3", true},
		{Test5, "Test5", "test5", true},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.label, tc.env.String())
			assert.Equal(t, tc.path, tc.env.RelativePath())
			assert.Equal(t, tc.test, tc.env.IsTest())
		})
	}
}

func TestTestEnvs(t *testing.T) {
	envs := TestEnvs()
	require.Len(t, envs, Count-1)
	for i, e := range envs {
		assert.True(t, e.IsTest())
		assert.Equal(t, Env(i+1), e)
	}
	assert.Equal(t, Prod, All()[0])
}

func TestParse(t *testing.T) {
	e, err := Parse("master")
	require.NoError(t, err)
	assert.Equal(t, Prod, e)

	e, err = Parse("prod")
	require.NoError(t, err)
	assert.Equal(t, Prod, e)

	e, err = Parse(" TEST4 ")
	require.NoError(t, err)
	assert.Equal(t, Test4, e)

	_, err = Parse("staging")
	assert.ErrorIs(t, err, ErrUnknownEnv)
}

func TestInvalidEnv(t *testing.T) {
	bad := Env(42)
	assert.False(t, bad.Valid())
	assert.False(t, bad.IsTest())
	assert.Equal(t, "Env(42)", bad.String())
	assert.Empty(t, bad.RelativePath())
	_, err := bad.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownEnv)
}

func TestTextRoundTrip(t *testing.T) {
	var e Env
	require.NoError(t, e.UnmarshalText([]byte("test2")))
	assert.Equal(t, Test2, e)
	text, err := e.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "test2", string(text))
}
