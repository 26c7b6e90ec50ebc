package services

import (
	"context"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/dataprotect"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
)

// Encrypt generates a one-time key for filePath and encrypts it in place.
// The key is discarded again if encryption does not go through.
func (s *operationService) Encrypt(ctx context.Context, filePath string) Outcome {
	r := s.begin(ctx, oplog.Encryption, filePath)
	if !r.validate(ctx, filePath) {
		return r.out
	}

	e := dataprotect.NewEncryptor(filePath, s.KeysDir, s.Suite)
	if err := e.GenerateKey(); err != nil {
		return r.fail(ctx, err)
	}
	key, err := e.LoadKey()
	if err == nil {
		err = e.EncryptFile(key)
		common.WipeByteArray(key)
	}
	if err != nil {
		if derr := e.Discard(); derr != nil {
			r.log.Warn(ctx, "key cleanup failed", "error", derr)
		}
		return r.fail(ctx, err)
	}

	r.out.Status = oplog.StatusOK
	r.out.Files = []string{filePath}
	r.out.Pairs = e.Pairs()
	return r.finish(ctx, oplog.Encrypted(r.out.Status, r.out.Pairs))
}

// Decrypt restores filePath with its stored key and deletes the key.
func (s *operationService) Decrypt(ctx context.Context, filePath string) Outcome {
	r := s.begin(ctx, oplog.Decryption, filePath)
	if !r.validate(ctx, filePath) {
		return r.out
	}

	d := dataprotect.NewDecryptor(filePath, s.KeysDir)
	key, err := d.LoadKey()
	if err != nil {
		return r.fail(ctx, err)
	}
	defer common.WipeByteArray(key)

	if err := d.DecryptFile(key); err != nil {
		return r.fail(ctx, err)
	}

	r.out.Status = oplog.StatusOK
	r.out.Files = []string{filePath}
	r.out.Pairs = d.Pairs()
	return r.finish(ctx, oplog.Decrypted(r.out.Status, r.out.Pairs))
}
