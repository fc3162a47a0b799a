package backup

import "fmt"

// BackupError reports a failed dump or archive step together with whatever
// the external tool printed to stderr, which is usually the only useful
// diagnostic mongodump and pg_dump produce.
type BackupError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *BackupError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("backup failed at %s: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("backup failed at %s: %v", e.Stage, e.Err)
}

func (e *BackupError) Unwrap() error { return e.Err }

// RestoreError is the restore-side counterpart of BackupError.
type RestoreError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *RestoreError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("restore failed at %s: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("restore failed at %s: %v", e.Stage, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
