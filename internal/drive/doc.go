// Package drive implements the remote metadata client for Google Drive.
//
// The client covers the two operations the core needs: bounded metadata
// listing (files.list with a q-expression) and raw content download
// (alt=media). Listing supports pagination; ListAll iterates until the
// continuation token is empty, which reconciliation requires for an
// exhaustive remote enumeration.
//
// # Queries
//
// Query renders structured filters into a Drive q-expression:
//
//	q := drive.Query{
//	    MimeType:  drive.MimeTypePDF,
//	    Keywords:  []string{"invoice", "contract"},
//	    DateAfter: "2024-01-01",
//	}
//	// trashed = false and mimeType='application/pdf' and
//	// (name contains 'invoice' or name contains 'contract') and
//	// modifiedTime >= '2024-01-01T00:00:00Z'
//
// Trashed files are always excluded. No keywords means no name clause.
//
// # Authentication
//
// NewServiceAccountClient reads a service account key file and wraps the
// HTTP transport with OAuth2 JWT credentials for the drive.readonly scope.
// Tests inject a plain http.Client and point the base URL at an httptest
// server instead.
package drive
