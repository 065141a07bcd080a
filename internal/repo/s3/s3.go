package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/JMURv/auth-guard/internal/config"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const incidentsPrefix = "incidents"

// Archive stores reuse incidents as JSON objects, one per detection.
type Archive struct {
	cli    *minio.Client
	bucket string
}

func New(conf config.S3Config) (*Archive, error) {
	cli, err := minio.New(
		conf.Addr, &minio.Options{
			Creds:  credentials.NewStaticV4(conf.User, conf.Pass, ""),
			Secure: conf.UseSSL,
			Region: conf.Location,
		},
	)
	if err != nil {
		return nil, err
	}

	return &Archive{cli: cli, bucket: conf.Bucket}, nil
}

// EnsureBucket creates the bucket on first start.
func (a *Archive) EnsureBucket(ctx context.Context, location string) error {
	const op = "s3.EnsureBucket.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	exists, err := a.cli.BucketExists(ctx, a.bucket)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to check bucket", zap.String("op", op), zap.String("bucket", a.bucket), zap.Error(err))
		return err
	}
	if exists {
		return nil
	}

	if err = a.cli.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error("failed to create bucket", zap.String("op", op), zap.String("bucket", a.bucket), zap.Error(err))
		return err
	}

	zap.L().Info("bucket created", zap.String("bucket", a.bucket))
	return nil
}

func incidentKey(inc *md.ReuseIncident) string {
	return fmt.Sprintf(
		"%s/%s/%d-%s.json",
		incidentsPrefix,
		inc.UserID,
		inc.DetectedAt.UnixMilli(),
		inc.TokenID,
	)
}

func (a *Archive) ArchiveIncident(ctx context.Context, inc *md.ReuseIncident) error {
	const op = "s3.ArchiveIncident.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	b, err := json.Marshal(inc)
	if err != nil {
		return err
	}

	info, err := a.cli.PutObject(
		ctx,
		a.bucket,
		incidentKey(inc),
		bytes.NewReader(b),
		int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		span.SetTag(config.ErrorSpanTag, true)
		zap.L().Error(
			"failed to archive incident",
			zap.String("op", op),
			zap.String("uid", inc.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	zap.L().Debug("incident archived", zap.String("op", op), zap.String("key", info.Key))
	return nil
}
