package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"
	ActionRabbitReconnecting      = "rabbitmq_reconnecting"

	ActionPublishChangeFailed = "publish_change_failed"
	ActionNearestPointLookup  = "nearest_point_lookup"
)
