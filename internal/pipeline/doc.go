// Package pipeline is the asset pipeline driver around the texture
// algorithms: it walks input paths, loads PNG files, runs one
// transform per file and writes the results back out.
//
// Batch runs follow an isolate-and-continue policy: a file that fails
// to load or save is logged and skipped, never aborting the rest of
// the batch. In-place overwrites are destructive, so the driver first
// writes a one-time "<name>_backup.png" copy alongside the original;
// the backup write always completes before the overwrite starts.
package pipeline
