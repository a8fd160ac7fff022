package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethicsreview/internal/adapters/ethereum"
	"ethicsreview/internal/domain"
)

func TestPromptApprover(t *testing.T) {
	var out bytes.Buffer
	approve := promptApprover(strings.NewReader("y\nno\n\n"), &out)
	req := ethereum.SignRequest{Method: "submitResearchProposal", From: common.HexToAddress("0xa11ce"), Nonce: 3, Gas: 21000}

	ok, err := approve(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Sign submitResearchProposal")

	ok, err = approve(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = approve(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok)

	// Input exhausted counts as a refusal.
	ok, err = approve(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsoleNotifier(t *testing.T) {
	var out, errOut bytes.Buffer
	n := &consoleNotifier{out: &out, errOut: &errOut}
	n.Success("Wallet connected successfully")
	n.Error("Please connect your wallet first")

	assert.Equal(t, "Wallet connected successfully\n", out.String())
	assert.Equal(t, "error: Please connect your wallet first\n", errOut.String())
}

func TestWriteCommand_NoProvider(t *testing.T) {
	t.Setenv("RPC_URL", "")
	t.Setenv("PRIVATE_KEY", "")
	t.Setenv("KEYSTORE_DIR", "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"submit-proposal", "--risk", "3", "--ethics", "80", "--period", "14"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Contains(t, errOut.String(), "Please install a wallet provider to use this application")
}
