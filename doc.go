// Package qiniu is a client for the Qiniu data-processing and storage APIs.
//
// It submits persistent operations (pfop) and polls their status (prefop),
// runs direct operations (dfop) on inline text, remote URLs or local files,
// lists bucket keys and queries CDN bandwidth.
//
// Operations never return a Go error. Every call yields a fully populated
// result record: Code and Text carry what the server said, RefCode and
// RefText carry what happened locally. Use OK() to test for success.
//
// Example usage:
//
//	client, err := qiniu.New(
//	    qiniu.WithCredentials(accessKey, secretKey),
//	    qiniu.WithUseHTTPS(true),
//	)
//	if err != nil {
//	    return err
//	}
//
//	result := client.Pfop(ctx, "my-bucket", "video.mp4", "avthumb/mp4",
//	    qiniu.WithPipeline("transcode"),
//	    qiniu.WithNotifyURL("https://example.com/notify"),
//	)
//	if !result.OK() {
//	    return fmt.Errorf("pfop failed: %s", result.RefText)
//	}
//	id, err := result.PersistentID()
package qiniu
