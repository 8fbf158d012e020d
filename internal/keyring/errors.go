package keyring

import "errors"

// ErrPassphraseNotSet indicates no passphrase has been initialized in the
// credential store. The caller must run the init flow before backing up or
// restoring.
var ErrPassphraseNotSet = errors.New("encryption passphrase not set")
