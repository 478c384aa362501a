package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/layer-3/tidbit/core"
)

func TestDocumentPlaceholders(t *testing.T) {
	out := Document(core.DocumentSummary{HashHex: "ab12", LogicalID: "doc-1"})

	assert.Contains(t, out, "(no label)\n")
	assert.Contains(t, out, "Hash: ab12\n")
	assert.Contains(t, out, "Doc ID: doc-1\n")
	assert.Contains(t, out, "Owner: N/A\n")
}

func TestDocumentFields(t *testing.T) {
	out := Document(core.DocumentSummary{
		Label:       "contract.pdf",
		HashHex:     "ab12",
		LogicalID:   "doc-1",
		OwnerWallet: "0xaaa",
	})

	assert.Equal(t, "contract.pdf\nHash: ab12\nDoc ID: doc-1\nOwner: 0xaaa\n----------------------------------------\n", out)
}

func TestDocumentsOneBlockEach(t *testing.T) {
	out := Documents([]core.DocumentSummary{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("Doc ID:")))

	assert.Empty(t, Documents(nil))
}

func TestSessionInfo(t *testing.T) {
	assert.Equal(t, "{\n  \"chain\": \"evm\",\n  \"wallet\": \"0xaaa\"\n}", SessionInfo([]byte(`{"chain":"evm","wallet":"0xaaa"}`+"\n")))
	assert.Equal(t, "plain", SessionInfo([]byte("plain")))
}

func TestAreaReplaces(t *testing.T) {
	var a Area
	a.Replace("one")
	a.Replace("two")
	assert.Equal(t, "two", a.String())
}

func TestSectionAndStatusLine(t *testing.T) {
	var buf bytes.Buffer
	s := &Section{Title: "Documents", W: &buf}
	s.Replace("x\n")
	assert.Equal(t, "== Documents ==\nx\n", buf.String())

	buf.Reset()
	status := &StatusLine{W: &buf}
	status.SetStatus("Verifying…")
	status.SetStatus("Authenticated")
	assert.Equal(t, "Authenticated", status.Last())
	assert.Equal(t, "Verifying…\nAuthenticated\n", buf.String())
}
