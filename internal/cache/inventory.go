package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	SongKeyPrefix      = "song:%d"
	SongsListKeyPrefix = "songs:list"
)

const (
	UserTTL = 5 * time.Minute
	SongTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SongKey(songID uint) string {
	return fmt.Sprintf(SongKeyPrefix, songID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSong(ctx context.Context, songID uint) {
	Invalidate(ctx, SongKey(songID))
	Invalidate(ctx, SongsListKeyPrefix)
}
