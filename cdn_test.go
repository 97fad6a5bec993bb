package qiniu

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksen/forksen-qiniu/internal/testutil"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/qntypes"
)

func TestGetBandwidthData(t *testing.T) {
	reply := `{"code":200,"error":"","time":["2016-09-01 00:00:00","2016-09-02 00:00:00"],` +
		`"data":{"a.example.com":{"china":[100,200],"oversea":[1,2]}}}`
	tr := testutil.Reply(&transport.Response{Code: 200, Text: reply}, nil)
	client, _ := newTestClient(t, tr, WithUseHTTPS(true))

	result := client.GetBandwidthData(context.Background(), qntypes.BandwidthRequest{
		StartDate:   "2016-09-01",
		EndDate:     "2016-09-02",
		Granularity: qntypes.GranularityDay,
		Domains:     []string{"a.example.com", "b.example.com"},
	})

	require.True(t, result.OK())
	require.NotNil(t, result.Result)
	assert.Equal(t, []int64{100, 200}, result.Result.Data["a.example.com"].China)
	assert.Len(t, result.Result.Time, 2)

	call, ok := tr.LastCall()
	require.True(t, ok)
	assert.Equal(t, "POST_JSON", call.Method)
	assert.Equal(t, "https://fusion.qiniuapi.com/v2/tune/bandwidth", call.URL)
	assert.JSONEq(t,
		`{"startDate":"2016-09-01","endDate":"2016-09-02","granularity":"day","domains":"a.example.com;b.example.com"}`,
		string(call.Body))
}

func TestGetBandwidthData_Failures(t *testing.T) {
	t.Run("invalid request", func(t *testing.T) {
		tr := &testutil.MockTransport{}
		client, _ := newTestClient(t, tr)

		result := client.GetBandwidthData(context.Background(), qntypes.BandwidthRequest{
			StartDate:   "2016-09-10",
			EndDate:     "2016-09-01",
			Granularity: qntypes.GranularityDay,
			Domains:     []string{"a.example.com"},
		})
		assert.Equal(t, qntypes.CodeInvalidArgument, result.RefCode)
		assert.Contains(t, result.RefText, "[bandwidth-error]")
		assert.Empty(t, tr.Calls())
	})

	t.Run("undecodable reply", func(t *testing.T) {
		client, _ := newTestClient(t, testutil.Reply(&transport.Response{Code: 200, Text: "<html>"}, nil))

		result := client.GetBandwidthData(context.Background(), qntypes.BandwidthRequest{
			StartDate:   "2016-09-01",
			EndDate:     "2016-09-01",
			Granularity: qntypes.Granularity5Min,
			Domains:     []string{"a.example.com"},
		})
		assert.Equal(t, qntypes.CodeUserUndef, result.RefCode)
		assert.Contains(t, result.RefText, "decode bandwidth response")
		assert.Nil(t, result.Result)
	})

	t.Run("network error", func(t *testing.T) {
		client, _ := newTestClient(t, testutil.Reply(nil, stderrors.New("timeout")))

		result := client.GetBandwidthData(context.Background(), qntypes.BandwidthRequest{
			StartDate:   "2016-09-01",
			EndDate:     "2016-09-01",
			Granularity: qntypes.GranularityHour,
			Domains:     []string{"a.example.com"},
		})
		assert.Equal(t, qntypes.CodeUserUndef, result.RefCode)
		assert.Contains(t, result.RefText, "timeout")
	})
}
