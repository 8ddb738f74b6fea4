package ui

const (
	HeaderCommandOK     = "Successfully executed command"
	HeaderCommandFailed = "Error executing command"
	HeaderSyncFailed    = "Error updating status"
	HeaderSyncResumed   = "Status updates resumed"
)

// Notice is a transient operator message.
type Notice struct {
	Header  string `json:"header"`
	Message string `json:"message"`
}
