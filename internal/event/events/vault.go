package events

import "github.com/dshills/textdir/internal/event/topic"

// Vault file lifecycle topics.
const (
	// TopicVaultFileOpened is published when a file is opened.
	TopicVaultFileOpened topic.Topic = "vault.file.opened"

	// TopicVaultFileCreated is published when a file appears in the vault.
	TopicVaultFileCreated topic.Topic = "vault.file.created"

	// TopicVaultFileChanged is published when a file's content changes.
	TopicVaultFileChanged topic.Topic = "vault.file.changed"

	// TopicVaultFileRenamed is published when a file is renamed in-process.
	TopicVaultFileRenamed topic.Topic = "vault.file.renamed"

	// TopicVaultFileDeleted is published when a file is removed.
	TopicVaultFileDeleted topic.Topic = "vault.file.deleted"
)

// FileOpened is published when a file is opened.
type FileOpened struct {
	// Path is the vault-relative path to the file.
	Path string
}

// Topic returns the topic this payload is published on.
func (FileOpened) Topic() topic.Topic { return TopicVaultFileOpened }

// FileCreated is published when a file appears in the vault.
type FileCreated struct {
	// Path is the vault-relative path to the file.
	Path string
}

// Topic returns the topic this payload is published on.
func (FileCreated) Topic() topic.Topic { return TopicVaultFileCreated }

// FileChanged is published when a file's content changes on disk.
type FileChanged struct {
	// Path is the vault-relative path to the file.
	Path string
}

// Topic returns the topic this payload is published on.
func (FileChanged) Topic() topic.Topic { return TopicVaultFileChanged }

// FileRenamed is published when a file is renamed with both paths known.
// External renames observed by the watcher arrive as FileDeleted plus
// FileCreated instead, because the watcher cannot pair the two sides.
type FileRenamed struct {
	// OldPath is the previous vault-relative path.
	OldPath string

	// NewPath is the current vault-relative path.
	NewPath string
}

// Topic returns the topic this payload is published on.
func (FileRenamed) Topic() topic.Topic { return TopicVaultFileRenamed }

// FileDeleted is published when a file is removed from the vault.
type FileDeleted struct {
	// Path is the vault-relative path to the file.
	Path string
}

// Topic returns the topic this payload is published on.
func (FileDeleted) Topic() topic.Topic { return TopicVaultFileDeleted }
