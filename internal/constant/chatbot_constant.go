package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"
)

// Event types published on the internal bus.
const (
	EventDatasetIngested = "DATASET_INGESTED"
	EventChatTurn        = "CHAT_TURN_COMPLETED"
)
