// Package credential persists HackMD API tokens on the local filesystem.
//
// Credentials live in a single JSON file holding named profiles plus the
// active profile marker, compatible with the layout used by earlier
// releases (~/.config/hackmd/config.json). The file is only ever written
// with owner-only permissions, via a temp-file-and-rename sequence, and
// mutations are serialised across processes with a sidecar flock, so a
// crash or a concurrent login can never leave a truncated credential file.
package credential

import "github.com/hackmd-tools/hackmd-cli/models"

//go:generate mockgen -source=doc.go -destination=../mock/credential_store_mock.go -package=mock

// Store is the persistence contract for credentials. Implementations own
// the credential lifecycle: nothing outside this package mutates the
// stored state.
type Store interface {
	// Load returns the credential stored under the named profile. When
	// profile is empty, the file's active profile is used. Returns
	// [ErrNoCredential] if the file or the profile entry does not exist.
	Load(profile string) (models.Credential, error)

	// Save stores cred under the named profile, marks that profile
	// active, and leaves every other profile untouched. The write is
	// atomic: concurrent readers observe either the previous state or
	// the new one, never a partial file.
	Save(profile string, cred models.Credential) error

	// Delete removes the named profile's credential (the active one when
	// profile is empty). Idempotent: deleting an absent credential is
	// not an error.
	Delete(profile string) error
}
