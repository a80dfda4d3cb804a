package hashio

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"diskprobe/lib/cnst"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/crypto/sha3"
)

// Digest is one computed hash plus the artifact file it was saved to.
type Digest struct {
	Algo string
	Sum  string
	Path string
}

// HashImage digests the whole image in one sequential pass and writes
// each hash to an <ALGO>-<basename>.txt artifact next to the working
// directory.
func HashImage(path string) ([]Digest, error) {
	fhandle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fhandle.Close()

	info, err := fhandle.Stat()
	if err != nil {
		return nil, err
	}

	hashers := []struct {
		algo string
		hash hash.Hash
	}{
		{"MD5", md5.New()},
		{"SHA-256", sha256.New()},
		{"SHA-512", sha512.New()},
		{"SHA3-256", sha3.New256()},
	}

	writers := make([]io.Writer, 0, len(hashers))
	for _, h := range hashers {
		writers = append(writers, h.hash)
	}

	fmt.Println("Hashing image:", path)
	start := time.Now()

	bar := pb.Full.Start64(info.Size())
	barReader := bar.NewProxyReader(fhandle)
	if _, err = io.Copy(io.MultiWriter(writers...), barReader); err != nil {
		return nil, err
	}
	bar.Finish()

	digests := make([]Digest, 0, len(hashers))
	for _, h := range hashers {
		digest := Digest{Algo: h.algo, Sum: hex.EncodeToString(h.hash.Sum(nil))}
		digest.Path, err = saveDigest(digest, path)
		if err != nil {
			return nil, err
		}
		digests = append(digests, digest)
	}

	if cnst.VERBOSE {
		fmt.Printf("Hashing completed in: %s\n\n", time.Since(start))
	}
	return digests, nil
}

func saveDigest(digest Digest, imagePath string) (string, error) {
	artifact := fmt.Sprintf("%s-%s.txt", digest.Algo, filepath.Base(imagePath))
	return artifact, os.WriteFile(artifact, []byte(digest.Sum), 0o644)
}
