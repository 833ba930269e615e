// Package blur implements the Gaussian blur used by feGaussianBlur and
// feDropShadow.
//
// Small deviations (sigma < 2) convolve with an explicit normalized kernel.
// Larger deviations use three successive box blurs of size
//
//	d = floor(sigma * 3*sqrt(2*pi)/4 + 0.5)
//
// which approximate the Gaussian to within a few percent. When d is odd the
// three boxes are centered on the output pixel. When d is even the first two
// boxes are centered on the pixel boundary to the left and to the right of
// the output pixel and the third box has size d+1 and is centered.
//
// Both axes are processed independently on premultiplied RGBA, so the
// horizontal and vertical deviations may differ.
package blur
