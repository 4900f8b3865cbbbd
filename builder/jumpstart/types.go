package jumpstart

// ManifestEntry is one row of models_manifest.json.
type ManifestEntry struct {
	ModelID    string `json:"model_id"`
	Version    string `json:"version"`
	MinVersion string `json:"min_version"`
	SpecKey    string `json:"spec_key"`
}

type EnvironmentVariable struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default any    `json:"default"`
	Scope   string `json:"scope"`
}

// ModelSpecs is the subset of a JumpStart model spec document used for hosting.
type ModelSpecs struct {
	ModelID                       string                `json:"model_id"`
	Version                       string                `json:"version"`
	HostingArtifactKey            string                `json:"hosting_artifact_key"`
	HostingPrepackedArtifactKey   string                `json:"hosting_prepacked_artifact_key"`
	HostingArtifactS3DataType     string                `json:"hosting_artifact_s3_data_type"`
	HostingEulaKey                string                `json:"hosting_eula_key"`
	DefaultInferenceInstanceType  string                `json:"default_inference_instance_type"`
	InferenceEnvironmentVariables []EnvironmentVariable `json:"inference_environment_variables"`
}

// Model is a resolved JumpStart model ready to be hosted.
type Model struct {
	ModelID string
	Version string
	// s3 uri of the hosting artifacts
	ArtifactURI string
	// artifacts are an uncompressed prefix, not a tarball
	Uncompressed bool
	// the model is gated behind an EULA
	Gated       bool
	Environment map[string]string
}
