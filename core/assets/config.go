package assets

// Config holds tunables for the built-in asset handlers.
type Config struct {
	// TexturePrefix is the bucket prefix holding texture files.
	TexturePrefix string `mapstructure:"texture_prefix" default:"textures/"`
	// AudioPrefix is the bucket prefix holding sound files.
	AudioPrefix string `mapstructure:"audio_prefix" default:"sounds/"`
	// PreviewMaxBytes is the largest object inlined as a base64 preview.
	PreviewMaxBytes int64 `mapstructure:"preview_max_bytes" default:"262144"`
	// SnapshotObject is the bucket object holding the persisted snapshot.
	SnapshotObject string `mapstructure:"snapshot_object" default:"project/assets.json"`
}
