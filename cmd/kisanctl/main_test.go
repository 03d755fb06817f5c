package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/i-m-samarth-cs/kisan-connect/internal/assistant"
	"github.com/i-m-samarth-cs/kisan-connect/internal/seed"
)

func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GO_ENV", "test")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BACKEND_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(in))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestChatOneShot(t *testing.T) {
	out, err := execute(t, "", "chat", "What", "is", "the", "delivery", "time?")
	require.NoError(t, err)
	assert.Equal(t, assistant.Respond("What is the delivery time?")+"\n", out)
}

func TestChatREPL(t *testing.T) {
	out, err := execute(t, "hello\n\npayment options\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, assistant.Respond("hello"))
	assert.Contains(t, out, assistant.Respond("payment options"))
}

func TestTranslate(t *testing.T) {
	out, err := execute(t, "", "translate", "--lang", "hi-IN", "Home", "Market Trends")
	require.NoError(t, err)
	assert.Equal(t, "Home\tहोम\nMarket Trends\tबाजार रुझान\n", out)

	_, err = execute(t, "", "translate", "--lang", "xx", "Home")
	require.Error(t, err)
}

func TestExportDemoListings(t *testing.T) {
	data := seed.MustLoad()
	require.NotEmpty(t, data.Products)
	farmerID := data.Products[0].FarmerID
	want := 0
	for _, p := range data.Products {
		if p.FarmerID == farmerID {
			want++
		}
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := execute(t, "", "export-xlsx", farmerID, "--out", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := xlsx.OpenBinary(b)
	require.NoError(t, err)
	sheet := f.Sheet["Listings"]
	require.NotNil(t, sheet)
	assert.Len(t, sheet.Rows, want+1)
}

func TestSeedRequiresBackend(t *testing.T) {
	_, err := execute(t, "", "seed")
	require.Error(t, err)
}
