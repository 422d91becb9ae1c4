package initial

import (
	"fmt"

	"ExpertBridge/pkg/zlog"
)

// Close releases the process-wide clients on shutdown. Any subset of them may
// be unconfigured (nil); close failures are logged, not returned, since the
// process is exiting anyway.
func Close() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			zlog.Warn(fmt.Sprintf("redis close failed: %v", err))
		}
		RedisClient = nil
	}
	if MilvusClient != nil {
		if err := MilvusClient.Close(); err != nil {
			zlog.Warn(fmt.Sprintf("milvus close failed: %v", err))
		}
		MilvusClient = nil
	}
	if GormDB != nil {
		if db, err := GormDB.DB(); err == nil {
			if err := db.Close(); err != nil {
				zlog.Warn(fmt.Sprintf("mysql close failed: %v", err))
			}
		}
		GormDB = nil
	}
}
