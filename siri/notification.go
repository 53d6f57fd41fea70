package siri

import "time"

// HeartbeatNotification is a keep-alive pushed by the notifier to show the
// subscription is still being served.
type HeartbeatNotification struct {
	RequestTimestamp   *time.Time `json:"RequestTimestamp,omitempty" xml:"RequestTimestamp"`
	ProducerRef        string     `json:"ProducerRef,omitempty" xml:"ProducerRef"`
	Status             string     `json:"Status,omitempty" xml:"Status"`
	ServiceStartedTime *time.Time `json:"ServiceStartedTime,omitempty" xml:"ServiceStartedTime"`
}

// SubscriptionTerminatedNotification tells the subscriber the notifier has
// dropped its subscription and no further updates will arrive.
type SubscriptionTerminatedNotification struct {
	ResponseTimestamp *time.Time `json:"ResponseTimestamp,omitempty" xml:"ResponseTimestamp"`
	SubscriberRef     string     `json:"SubscriberRef,omitempty" xml:"SubscriberRef"`
	SubscriptionRef   string     `json:"SubscriptionRef,omitempty" xml:"SubscriptionRef"`
	ErrorCondition    string     `json:"ErrorCondition,omitempty" xml:"ErrorCondition"`
}
