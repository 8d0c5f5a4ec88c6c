package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session.
func (r *CacheKeyStruct) StudentSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// ExamPayloadKey returns the cache key for an exam's student-facing payload.
func (r *CacheKeyStruct) ExamPayloadKey(examID string) string {
	return fmt.Sprintf("exam:%s:payload", examID)
}

// ProctoringChannel returns the Redis Pub/Sub channel carrying live violation
// events for one exam, consumed by the invigilator WebSocket feed.
func (r *CacheKeyStruct) ProctoringChannel(examID string) string {
	return fmt.Sprintf("exam:%s:proctoring", examID)
}

var CacheKey = NewCacheKeyStruct()
