package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on requests to the sync endpoint.
const AuthorizationHeaderName = "Authorization"

// EncryptionKeyName is the secure-store entry holding the database
// encryption key. The value is generated once per install and must remain
// stable afterwards.
const EncryptionKeyName = "db_encryption_key"
