package jumpstart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/ptr"
	"github.com/blang/semver/v4"
	"github.com/spf13/cast"
	"opencsg.com/fmbench/common/errorx"
)

const (
	ManifestKey   = "models_manifest.json"
	bucketPattern = "jumpstart-cache-prod-%s"
	s3Prefix      = "S3Prefix"
)

// GetObjectAPI is the subset of the s3 client used to read JumpStart metadata.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DefaultBucket returns the JumpStart cache bucket of region.
func DefaultBucket(region string) string {
	return fmt.Sprintf(bucketPattern, region)
}

type Resolver struct {
	api    GetObjectAPI
	bucket string

	mu       sync.Mutex
	manifest []ManifestEntry
}

func NewResolver(api GetObjectAPI, bucket string) (*Resolver, error) {
	if api == nil {
		return nil, errors.New("s3 api is nil")
	}
	if bucket == "" {
		return nil, errors.New("jumpstart bucket is empty")
	}
	return &Resolver{api: api, bucket: bucket}, nil
}

func (r *Resolver) Bucket() string {
	return r.bucket
}

// Resolve finds the hosting artifacts of modelID at version. An empty version or
// "*" picks the latest version, a version containing "*" is matched as a wildcard
// range such as "2.*".
func (r *Resolver) Resolve(ctx context.Context, modelID, version string) (*Model, error) {
	manifest, err := r.loadManifest(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := matchVersion(manifest, modelID, version)
	if err != nil {
		return nil, err
	}

	var specs ModelSpecs
	if err := r.getJSON(ctx, entry.SpecKey, &specs); err != nil {
		return nil, fmt.Errorf("failed to load specs of model %s@%s: %w", modelID, entry.Version, err)
	}

	key := specs.HostingPrepackedArtifactKey
	if key == "" {
		key = specs.HostingArtifactKey
	}
	if key == "" {
		return nil, errorx.ModelNotFound(fmt.Errorf("model %s@%s has no hosting artifact", modelID, entry.Version),
			errorx.Ctx().Set("model_id", modelID))
	}

	model := &Model{
		ModelID:      modelID,
		Version:      entry.Version,
		ArtifactURI:  r.ArtifactURI(key),
		Uncompressed: specs.HostingArtifactS3DataType == s3Prefix || strings.HasSuffix(key, "/"),
		Gated:        specs.HostingEulaKey != "",
		Environment:  DefaultEnvironment(specs),
	}
	slog.DebugContext(ctx, "resolved jumpstart model", slog.String("model_id", modelID),
		slog.String("version", model.Version), slog.String("artifact", model.ArtifactURI), slog.Bool("gated", model.Gated))
	return model, nil
}

// ArtifactURI renders key as an s3 uri in the JumpStart bucket.
func (r *Resolver) ArtifactURI(key string) string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, strings.TrimPrefix(key, "/"))
}

// DefaultEnvironment returns the default container environment of a model spec.
func DefaultEnvironment(specs ModelSpecs) map[string]string {
	env := make(map[string]string, len(specs.InferenceEnvironmentVariables))
	for _, v := range specs.InferenceEnvironmentVariables {
		if v.Name == "" || v.Default == nil {
			continue
		}
		env[v.Name] = cast.ToString(v.Default)
	}
	return env
}

func (r *Resolver) loadManifest(ctx context.Context) ([]ManifestEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.manifest != nil {
		return r.manifest, nil
	}
	var manifest []ManifestEntry
	if err := r.getJSON(ctx, ManifestKey, &manifest); err != nil {
		return nil, fmt.Errorf("failed to load jumpstart manifest from bucket %s: %w", r.bucket, err)
	}
	r.manifest = manifest
	return manifest, nil
}

func (r *Resolver) getJSON(ctx context.Context, key string, v any) error {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: ptr.String(r.bucket),
		Key:    ptr.String(key),
	})
	if err != nil {
		return err
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func matchVersion(manifest []ManifestEntry, modelID, version string) (*ManifestEntry, error) {
	version = strings.TrimSpace(version)
	var match func(semver.Version) bool
	switch {
	case version == "" || version == "*":
		match = func(semver.Version) bool { return true }
	case strings.Contains(version, "*"):
		rng, err := semver.ParseRange(strings.ReplaceAll(version, "*", "x"))
		if err != nil {
			return nil, errorx.InvalidExperiment(fmt.Errorf("invalid model version %q: %w", version, err),
				errorx.Ctx().Set("model_id", modelID))
		}
		match = rng
	default:
		want, err := semver.ParseTolerant(version)
		if err != nil {
			return nil, errorx.InvalidExperiment(fmt.Errorf("invalid model version %q: %w", version, err),
				errorx.Ctx().Set("model_id", modelID))
		}
		match = want.Equals
	}

	var best *ManifestEntry
	var bestVersion semver.Version
	for i := range manifest {
		entry := &manifest[i]
		if entry.ModelID != modelID {
			continue
		}
		v, err := semver.ParseTolerant(entry.Version)
		if err != nil {
			slog.Debug("skip manifest entry with invalid version", slog.String("model_id", modelID), slog.String("version", entry.Version))
			continue
		}
		if !match(v) {
			continue
		}
		if best == nil || v.GT(bestVersion) {
			best = entry
			bestVersion = v
		}
	}
	if best == nil {
		return nil, errorx.ModelNotFound(fmt.Errorf("no version of model %s matches %q", modelID, version),
			errorx.Ctx().Set("model_id", modelID).Set("model_version", version))
	}
	return best, nil
}
