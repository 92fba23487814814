// Package export writes rendered documents to the local filesystem or to S3.
//
// A target is either a filesystem path or an s3://bucket/key URL:
//
//	sink, key, err := export.Open(ctx, "s3://snapshots/counter.html", export.Options{Region: "eu-west-1"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	location, err := sink.Put(ctx, key, export.Page("counter", root, false))
package export
