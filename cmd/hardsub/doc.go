// Command hardsub detects burned-in subtitles in video files and classifies
// competing kinds of on-screen text so captioning pipelines can skip videos
// that already carry subtitles.
package main
