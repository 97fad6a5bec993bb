package qntypes

import (
	"encoding/json"
	"errors"
	"fmt"
)

// HTTPResult is the raw outcome of a call against the service.
//
// Code and Text carry what the server said. RefCode and RefText carry what
// happened locally: on success they mirror Code and Text, on failure RefText
// accumulates one diagnostic line per failure.
type HTTPResult struct {
	Code    int    `json:"code"`
	RefCode int    `json:"ref_code"`
	Text    string `json:"text"`
	RefText string `json:"ref_text"`
}

// OK reports whether the result represents a successful (2xx) response.
// A zero Code is never a success.
func (r *HTTPResult) OK() bool {
	return r != nil && r.Code >= 200 && r.Code < 300
}

// Shadow copies every field from other into r.
func (r *HTTPResult) Shadow(other *HTTPResult) {
	if other == nil {
		return
	}
	r.Code = other.Code
	r.RefCode = other.RefCode
	r.Text = other.Text
	r.RefText = other.RefText
}

// PfopResult is the result of submitting a persistent operation.
type PfopResult struct {
	HTTPResult
}

// PersistentID extracts the job identifier from a successful pfop response.
func (r *PfopResult) PersistentID() (string, error) {
	if !r.OK() {
		return "", fmt.Errorf("pfop result not ok: code %d", r.Code)
	}
	var body struct {
		PersistentID string `json:"persistentId"`
	}
	if err := json.Unmarshal([]byte(r.Text), &body); err != nil {
		return "", fmt.Errorf("decode pfop response: %w", err)
	}
	if body.PersistentID == "" {
		return "", errors.New("pfop response has no persistentId")
	}
	return body.PersistentID, nil
}

// PrefopResult is the result of polling a persistent operation.
type PrefopResult struct {
	HTTPResult
}

// PrefopInfo is the status document of a persistent operation.
type PrefopInfo struct {
	ID          string       `json:"id"`
	Code        int          `json:"code"`
	Desc        string       `json:"desc"`
	InputKey    string       `json:"inputKey"`
	InputBucket string       `json:"inputBucket"`
	Pipeline    string       `json:"pipeline"`
	ReqID       string       `json:"reqid"`
	Items       []PrefopItem `json:"items"`
}

// PrefopItem is the status of a single fop command within a job.
type PrefopItem struct {
	Cmd       string `json:"cmd"`
	Code      int    `json:"code"`
	Desc      string `json:"desc"`
	Error     string `json:"error,omitempty"`
	Hash      string `json:"hash,omitempty"`
	Key       string `json:"key,omitempty"`
	ReturnOld int    `json:"returnOld"`
}

// Info decodes the status document carried by a successful prefop response.
func (r *PrefopResult) Info() (*PrefopInfo, error) {
	if !r.OK() {
		return nil, fmt.Errorf("prefop result not ok: code %d", r.Code)
	}
	var info PrefopInfo
	if err := json.Unmarshal([]byte(r.Text), &info); err != nil {
		return nil, fmt.Errorf("decode prefop response: %w", err)
	}
	return &info, nil
}

// Job status codes reported by PrefopInfo.Code.
const (
	PrefopSucceeded   = 0
	PrefopWaiting     = 1
	PrefopProcessing  = 2
	PrefopFailed      = 3
	PrefopNotifyError = 4
)

// Done reports whether the job has reached a terminal state.
func (i *PrefopInfo) Done() bool {
	return i.Code != PrefopWaiting && i.Code != PrefopProcessing
}

// ListItem is a single stored object returned by the listing API.
type ListItem struct {
	Key      string `json:"key"`
	Hash     string `json:"hash"`
	Fsize    int64  `json:"fsize"`
	MimeType string `json:"mimeType"`
	PutTime  int64  `json:"putTime"` // 100ns units since the Unix epoch
	Type     int    `json:"type"`
	EndUser  string `json:"endUser,omitempty"`
}

// ListInfo is one page of a bucket listing.
type ListInfo struct {
	Marker         string     `json:"marker"`
	CommonPrefixes []string   `json:"commonPrefixes"`
	Items          []ListItem `json:"items"`
}

// ListResult is the result of a single listing request.
type ListResult struct {
	HTTPResult
	Result *ListInfo `json:"result,omitempty"`
}

// ListItemResult wraps a streamed item or the error that ended the stream.
type ListItemResult struct {
	Item ListItem
	Err  error
}

// BandwidthRequest selects the CDN bandwidth series to query.
type BandwidthRequest struct {
	// StartDate is the first day, e.g. 2016-09-01
	StartDate string

	// EndDate is the last day, e.g. 2016-09-10
	EndDate string

	// Granularity is the bucket size of each point
	Granularity Granularity

	// Domains lists the CDN domains to aggregate
	Domains []string
}

// BandwidthData holds the series of one domain, split by region.
type BandwidthData struct {
	China   []int64 `json:"china"`
	Oversea []int64 `json:"oversea"`
}

// BandwidthInfo is the decoded bandwidth response.
type BandwidthInfo struct {
	Code  int                      `json:"code"`
	Error string                   `json:"error"`
	Time  []string                 `json:"time"`
	Data  map[string]BandwidthData `json:"data"`
}

// BandwidthResult is the result of a bandwidth query.
type BandwidthResult struct {
	HTTPResult
	Result *BandwidthInfo `json:"result,omitempty"`
}
