package ports

import "time"

type MetricsPort interface {
	RecordRequest(method, path string, status int, started time.Time)
	IncNotificationsSent()
	IncNotificationsThrottled()
	IncDetections(confidence string)
}
