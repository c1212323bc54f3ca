package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_Verdicts(t *testing.T) {
	tests := []struct {
		preset   string
		tape     string
		accepted bool
		result   string
	}{
		{ZeroNOneN, "#", false, ""},
		{ZeroNOneN, "0011", true, ""},
		{ZeroNOneN, "000111", true, ""},
		{ZeroNOneN, "01", true, ""},
		{ZeroNOneN, "001", false, "0"},
		{ZeroNOneN, "0110", false, "110"},
		{AddOne, "", true, "100"},
		{AddOne, "1", true, "10"},
		{AddOne, "0", true, "1"},
		{BinaryIncrement, "", true, "1101"},
		{BinaryIncrement, "1011", true, "1100"},
	}

	for _, tt := range tests {
		t.Run(tt.preset+"/"+tt.tape, func(t *testing.T) {
			def, err := Get(tt.preset)
			require.NoError(t, err)
			if tt.tape != "" {
				def.Tape = tt.tape
			}

			m, err := def.Build(nil)
			require.NoError(t, err)
			for i := 0; m.Running() && i < 1000; i++ {
				m.Step()
			}

			require.False(t, m.Running())
			assert.Equal(t, tt.accepted, m.Accepted())
			if tt.result != "" {
				assert.Equal(t, tt.result, m.Head().Tape().Trimmed())
			}
		})
	}
}

func TestPresets_Registry(t *testing.T) {
	assert.Equal(t, []string{ZeroNOneN, AddOne, BinaryIncrement}, Names())
	assert.Len(t, All(), 3)

	a, err := Get(AddOne)
	require.NoError(t, err)
	a.Tape = "0"
	b, err := Get(AddOne)
	require.NoError(t, err)
	assert.Equal(t, "11", b.Tape, "Get returns a fresh copy")

	_, err = Get("busy beaver")
	assert.Error(t, err)

	for _, def := range All() {
		assert.NoError(t, def.Validate(), def.Name)
	}
}
