package service

import (
	"context"
	"errors"
	nethttp "net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/internal/testkit"
	transport "github.com/layer-3/tidbit/transport/http"
	"github.com/layer-3/tidbit/view"
)

func (f *fixture) dashboard() *DashboardService {
	return NewDashboardService(f.client, f.store, f.nav, f.status, f.events, zerolog.Nop())
}

func TestAuthenticatedGetWithoutSession(t *testing.T) {
	f := newFixture(t)

	var out any
	err := f.dashboard().AuthenticatedGet(context.Background(), transport.PathDocuments, &out)
	assert.True(t, errors.Is(err, core.ErrNoSession))
	assert.Empty(t, f.backend.Requests())
	page, _ := f.nav.Current()
	assert.Equal(t, core.PageIndex, page)
}

func TestAuthenticatedGetUnauthorizedClearsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "stale"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Status: nethttp.StatusUnauthorized})

	var out any
	err := f.dashboard().AuthenticatedGet(context.Background(), transport.PathDocuments, &out)
	assert.True(t, errors.Is(err, core.ErrUnauthorized))
	assert.Empty(t, f.token())
	page, _ := f.nav.Current()
	assert.Equal(t, core.PageIndex, page)
	assert.Equal(t, []string{"expired:" + transport.PathDocuments}, f.events.list())
}

func TestAuthenticatedGetServerErrorKeepsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Status: nethttp.StatusInternalServerError})

	var out any
	err := f.dashboard().AuthenticatedGet(context.Background(), transport.PathDocuments, &out)
	assert.True(t, errors.Is(err, core.ErrUnexpectedStatus))
	assert.Equal(t, "sess-1", f.token())
	assert.Zero(t, f.nav.Count())
}

func TestAuthenticatedGetDecodes(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathSession, testkit.Reply{Body: gin.H{"wallet": "0xaaa"}})

	var out struct {
		Wallet string `json:"wallet"`
	}
	require.NoError(t, f.dashboard().AuthenticatedGet(context.Background(), transport.PathSession, &out))
	assert.Equal(t, "0xaaa", out.Wallet)
	assert.Equal(t, "sess-1", f.backend.Requests()[0].SessionID)
}

func TestLoadSessionInfo(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathSession, testkit.Reply{Raw: `{"wallet":"0xaaa","chain":"evm"}`})

	var area view.Area
	require.NoError(t, f.dashboard().LoadSessionInfo(context.Background(), &area))
	assert.Equal(t, "{\n  \"wallet\": \"0xaaa\",\n  \"chain\": \"evm\"\n}", area.String())
	assert.Zero(t, f.nav.Count())
}

func TestLoadSessionInfoAnyFailureDropsSession(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathSession, testkit.Reply{Status: nethttp.StatusInternalServerError})

	var area view.Area
	err := f.dashboard().LoadSessionInfo(context.Background(), &area)
	assert.Error(t, err)
	assert.Empty(t, f.token())
	assert.Empty(t, area.String())
	page, _ := f.nav.Current()
	assert.Equal(t, core.PageIndex, page)
}

func TestLoadSessionInfoWithoutSession(t *testing.T) {
	f := newFixture(t)

	var area view.Area
	err := f.dashboard().LoadSessionInfo(context.Background(), &area)
	assert.True(t, errors.Is(err, core.ErrNoSession))
	assert.Empty(t, f.backend.Requests())
	assert.Equal(t, 1, f.nav.Count())
}

func TestLoadDocuments(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Body: []gin.H{
		{"label": "deed.pdf", "hash_hex": "aa", "logical_id": "doc-1", "owner_wallet": "0xaaa"},
		{"hash_hex": "bb", "logical_id": "doc-2"},
	}})

	area := &view.Area{}
	area.Replace("stale content")
	require.NoError(t, f.dashboard().LoadDocuments(context.Background(), area))

	want := view.Documents([]core.DocumentSummary{
		{Label: "deed.pdf", HashHex: "aa", LogicalID: "doc-1", OwnerWallet: "0xaaa"},
		{HashHex: "bb", LogicalID: "doc-2"},
	})
	assert.Equal(t, want, area.String())
	assert.Contains(t, area.String(), "(no label)")
	assert.Contains(t, area.String(), "Owner: N/A")
}

func TestLoadDocumentsNullListRendersNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Raw: "null"})

	area := &view.Area{}
	area.Replace("previous")
	require.NoError(t, f.dashboard().LoadDocuments(context.Background(), area))
	assert.Equal(t, "previous", area.String())
	assert.Empty(t, f.status.Last())
}

func TestLoadDocumentsEmptyListClearsArea(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Raw: "[]"})

	area := &view.Area{}
	area.Replace("previous")
	require.NoError(t, f.dashboard().LoadDocuments(context.Background(), area))
	assert.Equal(t, view.Documents(nil), area.String())
}

func TestLoadDocumentsUnauthorizedRendersNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Status: nethttp.StatusUnauthorized})

	area := &view.Area{}
	area.Replace("untouched")
	require.NoError(t, f.dashboard().LoadDocuments(context.Background(), area))
	assert.Equal(t, "untouched", area.String())
	assert.Empty(t, f.token())
}

func TestLoadDocumentsServerError(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "sess-1"))
	f.backend.Reply(transport.PathDocuments, testkit.Reply{Status: nethttp.StatusBadGateway})

	area := &view.Area{}
	area.Replace("untouched")
	err := f.dashboard().LoadDocuments(context.Background(), area)
	assert.True(t, errors.Is(err, core.ErrUnexpectedStatus))
	assert.Equal(t, "untouched", area.String())
	assert.Equal(t, StatusDocumentsFailed, f.status.Last())
	assert.Equal(t, "sess-1", f.token())
}
