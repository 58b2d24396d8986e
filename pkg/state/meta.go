package state

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

var snapshotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/goliatone/go-burnguard/state"))

// stamp derives content metadata for encoded, keeping Extra from meta.
func stamp(meta Meta, encoded []byte, at time.Time) Meta {
	sum := sha256.Sum256(encoded)
	out := cloneMeta(meta)
	out.ETag = hex.EncodeToString(sum[:])
	out.SnapshotID = uuid.NewSHA1(snapshotNamespace, encoded).String()
	out.UpdatedAt = at
	return out
}
