package models

// NetworkStatus represents cumulative network counters aggregated across
// all interfaces. Counters run since the host last reset them, not since
// this process started, so they are not monotonic-from-zero.
type NetworkStatus struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrorsIn    uint64 `json:"errors_in"`
	ErrorsOut   uint64 `json:"errors_out"`
}
