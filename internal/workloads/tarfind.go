package workloads

// Archive search: build a TAR-like header list with pseudo-random
// filenames, then look up a handful of entries picked from the middle of
// the list. The oracle counts successful lookups.

const (
	tarLocalScale   = 46
	tarGlobalScale  = 1
	tarArchiveFiles = 35
	tarSearches     = 5
)

type tarHeader struct {
	filename string
	mode     string
	uid      string
	gid      string
	size     string
	mtime    string
	checksum string
	isLink   string
	linked   string
}

func genRandomFilename(rng *lcgRand, length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = byte('A' + rng.next()%26)
	}
	return string(buf)
}

func tarfindBody(rng *lcgRand, lsf, gsf int) bool {
	found := 0

	for l := 0; l < lsf; l++ {
		for g := 0; g < gsf; g++ {
			hdr := make([]tarHeader, tarArchiveFiles)
			for i := range hdr {
				flen := 5 + i%94
				hdr[i].isLink = "0"
				hdr[i].filename = genRandomFilename(rng, flen)
				hdr[i].size = "0"
			}

			found = 0
			for p := 0; p < tarSearches; p++ {
				search := hdr[(p+tarArchiveFiles/2)%tarArchiveFiles].filename
				for i := range hdr {
					if hdr[i].filename == search {
						found++
						break
					}
				}
			}
		}
	}

	return found == tarSearches
}

// TarfindBenchmark runs the archive search with a zero-seeded generator:
// five lookups at offset (p + 17) mod 35, all expected to succeed.
func TarfindBenchmark() bool {
	rng := newLCG(0)
	return tarfindBody(rng, tarLocalScale, tarGlobalScale)
}
