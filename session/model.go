package session

// RefreshRecord is the stored shape of one device's refresh credential.
// The plaintext token is written once at issuance and only ever read back
// for constant-time comparison; it is never returned to callers again.
type RefreshRecord struct {
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// DeviceSession is the read-only enumeration entry for a "manage your
// sessions" view: which device holds a live refresh credential and until when.
type DeviceSession struct {
	DeviceID  string
	ExpiresAt int64
}
