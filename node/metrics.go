// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import "github.com/vechain/valpool/metrics"

var (
	metricPoolSize          = metrics.LazyLoadGauge("pool_size")
	metricCurrentEra        = metrics.LazyLoadGauge("current_era")
	metricRotationFailures  = metrics.LazyLoadCounter("rotation_failures_count")
	metricScoreCacheHitRate = metrics.LazyLoadGauge("score_cache_hit_rate_percent")
	metricBlockDuration     = metrics.LazyLoadHistogram("block_duration_ms", metrics.BucketMillis)
	metricExtrinsics        = metrics.LazyLoadCounterVec("extrinsics_count", []string{"call", "result"})
)
