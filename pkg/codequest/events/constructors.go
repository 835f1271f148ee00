package events

import "time"

func newEvent(t EventType, topic int, image, operation, message string) Event {
	return Event{
		Type:      t,
		Topic:     &topic,
		Image:     image,
		Operation: operation,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func Success(topic int, image, operation, message string) Event {
	return newEvent(EventTypeSuccess, topic, image, operation, message)
}

func Error(topic int, image, operation, message string, err error) Event {
	event := newEvent(EventTypeError, topic, image, operation, message)
	if err != nil {
		event.Error = err.Error()
	}
	return event
}

func Info(topic int, image, operation, message string) Event {
	return newEvent(EventTypeInfo, topic, image, operation, message)
}

func Warning(topic int, image, operation, message string, err error) Event {
	event := newEvent(EventTypeWarning, topic, image, operation, message)
	if err != nil {
		event.Error = err.Error()
	}
	return event
}
