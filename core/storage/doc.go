// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface and builds the upload
// archive on top of it: every spreadsheet received by the import endpoints can be
// kept under <prefix>/<entity>/<ray id>/<file name> for later replay from the CLI.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider (AWS S3 or MinIO) and is
// mocked in core/storage/mocks for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage)
//	key, err := archive.Save(ctx, "employee", rayID, "roster.xlsx", data, contentType)
package storage
