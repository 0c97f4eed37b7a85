package pslcore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spf13/afero"
)

const defaultPSLFileName = "public_suffix_list.dat"

// pslMaxAgeHours is how long a cached PSL file is trusted before
// FetchPublicSuffixList refreshes it from the network.
const pslMaxAgeHours float64 = 72

// publicSuffixListMirrors are tried in order until one succeeds.
var publicSuffixListMirrors = []string{
	"https://publicsuffix.org/list/public_suffix_list.dat",
	"https://raw.githubusercontent.com/publicsuffix/list/master/public_suffix_list.dat",
}

// FetchPublicSuffixList returns the text of the PSL file cached at
// cachePath on fsys, refreshing it from the canonical mirrors first if
// the cache is missing or older than pslMaxAgeHours. This is pure
// acquisition: it never touches a PublicSuffixList or a Buffer. Feed
// the returned text to (*PublicSuffixList).Parse.
func FetchPublicSuffixList(fsys afero.Fs, cachePath string) (string, error) {
	stale, statErr := isCacheStale(fsys, cachePath)
	if stale {
		if err := RefreshPublicSuffixListCache(fsys, cachePath); err != nil {
			if statErr != nil {
				// No usable cache and the refresh also failed: nothing to return.
				return "", err
			}
			log.Println(err)
		}
	}
	bs, err := afero.ReadFile(fsys, cachePath)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// isCacheStale reports whether the file at cachePath is missing or
// older than pslMaxAgeHours.
func isCacheStale(fsys afero.Fs, cachePath string) (bool, error) {
	info, err := fsys.Stat(cachePath)
	if err != nil {
		return true, err
	}
	return time.Since(info.ModTime()).Hours() > pslMaxAgeHours, nil
}

// RefreshPublicSuffixListCache downloads the PSL from the first
// reachable mirror in publicSuffixListMirrors and writes it to
// cachePath on fsys.
func RefreshPublicSuffixListCache(fsys afero.Fs, cachePath string) error {
	for _, mirror := range publicSuffixListMirrors {
		bodyBytes, err := downloadFile(mirror)
		if err != nil {
			log.Println(err)
			continue
		}
		if err := afero.WriteFile(fsys, cachePath, bodyBytes, 0o644); err != nil {
			return err
		}
		log.Println("Public Suffix List cache refreshed from", mirror)
		return nil
	}
	return errors.New("failed to fetch any Public Suffix List from all mirrors")
}

// downloadFile downloads url's body as a byte slice.
func downloadFile(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed, HTTP status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
