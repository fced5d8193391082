package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	assigner "github.com/xlittlerag/groups-assigner"
	"github.com/xlittlerag/groups-assigner/store"
	testutil "github.com/xlittlerag/groups-assigner/testing"
	"github.com/xlittlerag/groups-assigner/types"
)

const testPrefix = "assigner-test"

func startService(t *testing.T) *Service {
	t.Helper()

	_, nc := testutil.StartEmbeddedNATS(t)

	cfg := assigner.TestConfig()
	eng, err := assigner.NewEngine(&cfg)
	require.NoError(t, err)

	svc, err := New(Config{SubjectPrefix: testPrefix}, nc, eng, store.NewMemory(nil))
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	t.Cleanup(func() {
		require.NoError(t, svc.Stop())
	})

	return svc
}

func request(t *testing.T, svc *Service, suffix string, payload any, out any) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	msg, err := svc.nc.Request(testPrefix+"."+suffix, data, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(msg.Data, out))
}

func requestError(t *testing.T, svc *Service, suffix string, payload any) string {
	t.Helper()

	var resp errorResponse
	request(t, svc, suffix, payload, &resp)
	require.NotEmpty(t, resp.Error)

	return resp.Error
}

func uploadDatasets(t *testing.T, svc *Service, competitors []types.Competitor, groups []types.Group) (string, string) {
	t.Helper()

	var cresp, gresp uploadResponse
	request(t, svc, "competitors.put", competitors, &cresp)
	require.Equal(t, "ok", cresp.Status)
	require.Len(t, cresp.Hash, 32)

	request(t, svc, "groups.put", groups, &gresp)
	require.Equal(t, "ok", gresp.Status)

	return cresp.Hash, gresp.Hash
}

func TestService_Lifecycle(t *testing.T) {
	svc := startService(t)

	require.ErrorIs(t, svc.Start(), types.ErrAlreadyStarted)

	t.Run("missing dependencies are rejected", func(t *testing.T) {
		cfg := assigner.TestConfig()
		eng, err := assigner.NewEngine(&cfg)
		require.NoError(t, err)

		_, err = New(Config{}, nil, eng, store.NewMemory(nil))
		require.ErrorIs(t, err, types.ErrConnRequired)

		_, err = New(Config{}, svc.nc, nil, store.NewMemory(nil))
		require.ErrorIs(t, err, types.ErrEngineRequired)

		_, err = New(Config{}, svc.nc, eng, nil)
		require.ErrorIs(t, err, types.ErrStoreRequired)
	})
}

func TestService_Uploads(t *testing.T) {
	svc := startService(t)

	t.Run("accepts well-formed datasets", func(t *testing.T) {
		competitors := []types.Competitor{
			{ID: "ana", Name: "ana", Country: "ESP"},
			{ID: "bob", Name: "bob", Country: "USA"},
			{ID: "eve", Name: "eve", Country: "GER"},
		}
		groups := []types.Group{{ID: "1", Capacity: 3}}

		ckey, gkey := uploadDatasets(t, svc, competitors, groups)
		require.NotEmpty(t, ckey)
		require.NotEmpty(t, gkey)

		var fresp uploadResponse
		request(t, svc, "fixed.put", []types.FixedPosition{
			{CompetitorID: "ana", GroupID: "1", Seat: "a"},
		}, &fresp)
		require.Equal(t, "ok", fresp.Status)
		require.Equal(t, 1, fresp.Count)
	})

	t.Run("rejects a competitor without a country", func(t *testing.T) {
		msg := requestError(t, svc, "competitors.put", []types.Competitor{{ID: "x", Name: "x"}})
		require.Contains(t, msg, "missing id, name or country")
	})

	t.Run("rejects a group outside the capacity bounds", func(t *testing.T) {
		msg := requestError(t, svc, "groups.put", []types.Group{{ID: "1", Capacity: 5}})
		require.Contains(t, msg, "capacity 5")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		resp, err := svc.nc.Request(testPrefix+".competitors.put", []byte("{not json"), 5*time.Second)
		require.NoError(t, err)

		var eresp errorResponse
		require.NoError(t, json.Unmarshal(resp.Data, &eresp))
		require.Contains(t, eresp.Error, "invalid competitor payload")
	})
}

func TestService_Validate(t *testing.T) {
	svc := startService(t)

	competitors := []types.Competitor{
		{ID: "ana", Name: "ana", Country: "ESP"},
		{ID: "bob", Name: "bob", Country: "USA"},
		{ID: "eve", Name: "eve", Country: "GER"},
		{ID: "ian", Name: "ian", Country: "FRA"},
		{ID: "mia", Name: "mia", Country: "ITA"},
	}
	groups := []types.Group{
		{ID: "1", Capacity: 3},
		{ID: "2", Capacity: 3},
	}
	ckey, gkey := uploadDatasets(t, svc, competitors, groups)

	t.Run("reports the diagnostic for undrawable datasets", func(t *testing.T) {
		var resp validateResponse
		request(t, svc, "validate", datasetRefs{CompetitorsHash: ckey, GroupsHash: gkey}, &resp)

		require.False(t, resp.Valid)
		require.Contains(t, resp.Message, "total competitors (5)")
		require.Contains(t, resp.Message, "total group capacity (6)")
	})

	t.Run("accepts drawable datasets", func(t *testing.T) {
		full := append(competitors, types.Competitor{ID: "zoe", Name: "zoe", Country: "KOR"})
		fullKey, _ := uploadDatasets(t, svc, full, groups)

		var resp validateResponse
		request(t, svc, "validate", datasetRefs{CompetitorsHash: fullKey, GroupsHash: gkey}, &resp)

		require.True(t, resp.Valid)
		require.Empty(t, resp.Message)
	})

	t.Run("unknown dataset keys are an error", func(t *testing.T) {
		msg := requestError(t, svc, "validate", datasetRefs{CompetitorsHash: "nope", GroupsHash: gkey})
		require.Contains(t, msg, "dataset not found")
	})
}

func TestService_DrawFlow(t *testing.T) {
	svc := startService(t)

	competitors := []types.Competitor{
		{ID: "ana", Name: "ana", Country: "ESP"},
		{ID: "bob", Name: "bob", Country: "USA"},
		{ID: "eve", Name: "eve", Country: "GER"},
		{ID: "ian", Name: "ian", Country: "FRA"},
		{ID: "mia", Name: "mia", Country: "ITA"},
		{ID: "zoe", Name: "zoe", Country: "KOR"},
	}
	groups := []types.Group{
		{ID: "1", Capacity: 3},
		{ID: "2", Capacity: 3},
	}
	ckey, gkey := uploadDatasets(t, svc, competitors, groups)

	seed := int64(42)
	var drawResp drawResponse
	request(t, svc, "draw", drawRequest{
		datasetRefs: datasetRefs{CompetitorsHash: ckey, GroupsHash: gkey},
		Seed:        &seed,
	}, &drawResp)

	require.Len(t, drawResp.ResultHash, 32)
	require.Len(t, drawResp.Assignment, 6)
	require.Zero(t, drawResp.Summary.TotalCollisions, "distinct countries cannot collide")

	t.Run("assignment rows are seat ordered", func(t *testing.T) {
		for i := 1; i < len(drawResp.Assignment); i++ {
			prev, cur := drawResp.Assignment[i-1], drawResp.Assignment[i]
			require.True(t, prev.GroupID < cur.GroupID ||
				(prev.GroupID == cur.GroupID && prev.Seat < cur.Seat))
		}
	})

	t.Run("stored result is fetchable by hash", func(t *testing.T) {
		var resp drawResponse
		request(t, svc, "result.get", resultRef{ResultHash: drawResp.ResultHash}, &resp)

		require.Equal(t, drawResp.Assignment, resp.Assignment)
		require.Equal(t, drawResp.Summary, resp.Summary)
	})

	t.Run("export renders the stored result as CSV", func(t *testing.T) {
		var resp exportResponse
		request(t, svc, "result.export", resultRef{ResultHash: drawResp.ResultHash}, &resp)

		require.Contains(t, resp.Filename, drawResp.ResultHash)
		lines := strings.Split(strings.TrimSpace(resp.CSV), "\n")
		require.Len(t, lines, 7)
		require.Equal(t, "Group ID,Position,Competitor Name,Country", lines[0])
	})

	t.Run("unknown result hash is an error", func(t *testing.T) {
		msg := requestError(t, svc, "result.get", resultRef{ResultHash: "nope"})
		require.Contains(t, msg, "result not found")
	})

	t.Run("per-request time budget reaches the engine", func(t *testing.T) {
		// A nanosecond budget expires before the first attempt starts, so the
		// engine's exhaustion error must surface through the wire.
		msg := requestError(t, svc, "draw", drawRequest{
			datasetRefs:    datasetRefs{CompetitorsHash: ckey, GroupsHash: gkey},
			MaxTimeSeconds: 1e-9,
		})
		require.Contains(t, msg, "time budget exhausted")
	})

	t.Run("undrawable datasets fail the draw", func(t *testing.T) {
		short := competitors[:5]
		shortKey, _ := uploadDatasets(t, svc, short, groups)

		msg := requestError(t, svc, "draw", drawRequest{
			datasetRefs: datasetRefs{CompetitorsHash: shortKey, GroupsHash: gkey},
		})
		require.Contains(t, msg, "total competitors (5)")
	})
}

func TestExportCSV(t *testing.T) {
	rows := []types.SeatAssignment{
		{GroupID: "1", Seat: "a", Name: "ana", Country: "ESP"},
		{GroupID: "1", Seat: "b", Name: "bob, jr", Country: "USA"},
	}

	data, err := ExportCSV(rows)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Group ID,Position,Competitor Name,Country", lines[0])
	require.Equal(t, `1,a,ana,ESP`, lines[1])
	require.Equal(t, `1,b,"bob, jr",USA`, lines[2])
}
