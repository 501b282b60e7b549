// Package audio implements the sound asset category.
//
// Items mirror the audio objects stored under the sound prefix of the
// asset bucket. Unlike textures, sound files are never inlined; items only
// carry keys and display metadata. The handler accepts dropped audio files
// and supports the display filter, but defines no Clean operation.
package audio
